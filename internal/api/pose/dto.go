package pose

// DetectRequest is the JSON body of POST /pose/detect. The image field holds
// either a bare base64 payload or a full data URI.
type DetectRequest struct {
	Image string `json:"image" validate:"required"`
}
