package predict

import "context"

// CheckReadiness returns nil once a scorer is loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.scorer == nil {
		return ErrModelNotLoaded
	}
	return nil
}
