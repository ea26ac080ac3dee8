package repository

import "github.com/tair/cafe-inventory/internal/inventory/domain"

// AppendActivity stores an audit entry. The timestamp is taken from the
// store clock; any caller-supplied value is discarded.
func (s *Store) AppendActivity(a domain.ActivityLog) (domain.ActivityLog, error) {
	if err := a.Validate(); err != nil {
		return domain.ActivityLog{}, err
	}
	if err := s.requireUser(a.UserID); err != nil {
		return domain.ActivityLog{}, err
	}
	a.Timestamp = s.now()
	return s.activity.insert(a, nil)
}

// ListActivity lists audit entries matching f, in insertion order.
func (s *Store) ListActivity(f domain.Filter) ([]domain.ActivityLog, error) {
	return listFiltered(s.activity, f)
}
