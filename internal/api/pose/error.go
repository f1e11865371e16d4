package pose

import "errors"

var (
	ErrNoImageData = errors.New("no image data provided")
	ErrImageDecode = errors.New("unable to decode image data")
	ErrInference   = errors.New("pose inference failed")
)
