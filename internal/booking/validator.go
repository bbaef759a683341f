package booking

import "context"

// Validator confirms that every user identifier in a group exists
// before matching or booking proceeds. It performs no writes.
type Validator struct {
	users UserStore
}

// NewValidator returns a Validator backed by the given user store.
func NewValidator(users UserStore) *Validator { return &Validator{users: users} }

// Validate deduplicates the group and checks that each identifier
// corresponds to an existing user. It returns the cleaned identifier
// list on success. An empty group is a malformed request and fails
// with ErrEmptyGroup; a missing user fails with ErrUnknownUser.
func (v *Validator) Validate(ctx context.Context, userIDs []uint64) ([]uint64, error) {
	unique := make([]uint64, 0, len(userIDs))
	seen := make(map[uint64]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, ErrEmptyGroup
	}
	n, err := v.users.CountExisting(ctx, unique)
	if err != nil {
		return nil, err
	}
	if n != len(unique) {
		return nil, ErrUnknownUser
	}
	return unique, nil
}
