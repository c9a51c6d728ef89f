package store

import (
	"context"
	"time"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// Profile is a user's imported Windows machine and installed applications.
type Profile struct {
	UserID       string                  `json:"user_id"`
	Email        string                  `json:"email,omitempty"`
	Name         string                  `json:"name,omitempty"`
	Provider     string                  `json:"provider,omitempty"`
	ImportedAt   time.Time               `json:"imported_at"`
	Machine      hardware.MachineProfile `json:"machine"`
	Applications []string                `json:"applications"`
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Machine = p.Machine.Clone()
	if p.Applications != nil {
		out.Applications = append([]string(nil), p.Applications...)
	}
	return &out
}

// ProfileFilter narrows ListProfiles.
type ProfileFilter struct {
	Provider string
	Limit    int
	Offset   int
}

const defaultListLimit = 100

func (f ProfileFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

func (f ProfileFilter) offset() int {
	return max(f.Offset, 0)
}

// ProfileStore persists profiles keyed by opaque user id. Stored values are
// only ever replaced whole.
type ProfileStore interface {
	// GetProfile returns nil, nil when the user has no profile.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	ReplaceProfile(ctx context.Context, p *Profile) error
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error)
	DeleteProfile(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
	Close() error
}
