package markup

import "errors"

var ErrRenderFailed = errors.New("markup: failed to render markdown")
