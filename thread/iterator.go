package thread

import (
	"github.com/apex/log"
)

type iteratorState int

const (
	iteratorPositioned iteratorState = iota
	iteratorTerminated
	iteratorFailed
)

type IteratorOption func(*Iterator)

// Strict stops iteration with ErrFlavorOverrun when a record's declared size
// runs past the end of the command, instead of taking it at face value.
func Strict() IteratorOption {
	return func(it *Iterator) {
		it.strict = true
	}
}

// Iterator walks a flavor list one record at a time.
type Iterator struct {
	cmd     *Command
	current uint64
	state   iteratorState
	strict  bool
	err     error
}

// Next returns the next record. It returns false at the end sentinel, when
// the command's size is used up, or after a decoding failure.
func (it *Iterator) Next() (FlavorRecord, bool) {
	if it.state != iteratorPositioned {
		return FlavorRecord{}, false
	}
	if it.current >= uint64(it.cmd.size) {
		it.state = iteratorTerminated
		return FlavorRecord{}, false
	}
	offset := it.cmd.offset + int64(it.current)
	rec, ok, err := it.cmd.readFlavor(offset, uint64(it.cmd.size)-it.current, it.strict)
	if err != nil {
		it.fail(offset, err)
		return FlavorRecord{}, false
	}
	if !ok {
		it.state = iteratorTerminated
		return FlavorRecord{}, false
	}
	it.current += rec.Size()
	return rec, true
}

// Err returns the failure that ended iteration, or nil when it ended at the
// sentinel or the end of the command.
func (it *Iterator) Err() error {
	return it.err
}

func (it *Iterator) fail(offset int64, err error) {
	log.WithError(err).WithFields(log.Fields{
		"cpu":    it.cmd.cpu,
		"offset": offset,
	}).Debug("flavor list ended early")
	it.state = iteratorFailed
	it.err = err
}
