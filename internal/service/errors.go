package service

import (
	"errors"

	"github.com/geocoder89/mesto/internal/apperr"
	"github.com/geocoder89/mesto/internal/domain"
)

// Messages for one operation's store signals.
type messages struct {
	invalidID   string
	invalidData string
	notFound    string
	duplicate   string
}

// classify maps store sentinels to the classified set. Errors it does not
// recognise are returned unchanged and end up as internal failures.
func classify(err error, m messages) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidID) && m.invalidID != "":
		return apperr.Wrap(apperr.KindRequest, m.invalidID, err)
	case errors.Is(err, domain.ErrInvalidData) && m.invalidData != "":
		return apperr.Wrap(apperr.KindRequest, m.invalidData, err)
	case errors.Is(err, domain.ErrNotFound) && m.notFound != "":
		return apperr.Wrap(apperr.KindNotFound, m.notFound, err)
	case errors.Is(err, domain.ErrDuplicate) && m.duplicate != "":
		return apperr.Wrap(apperr.KindConflict, m.duplicate, err)
	default:
		return err
	}
}
