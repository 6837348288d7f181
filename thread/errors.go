package thread

import "errors"

var ErrFlavorOverrun = errors.New("flavor extends past the end of the thread command")
