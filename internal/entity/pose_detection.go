package entity

// Keypoint is a single anatomical landmark produced by the pose model.
// Coordinates are normalized to the source image, visibility is the model's
// confidence that the point is actually visible.
type Keypoint struct {
	Index      int     `json:"index"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// PixelPoint is a keypoint projected onto image pixel coordinates.
type PixelPoint struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Measurement is a derived pixel distance between two named keypoints.
type Measurement struct {
	Label          string     `json:"label"`
	DistancePixels float64    `json:"distance_pixels"`
	From           PixelPoint `json:"from"`
	To             PixelPoint `json:"to"`
}

type DetectionQuality string

const (
	QualityExcellent DetectionQuality = "excellent"
	QualityGood      DetectionQuality = "good"
	QualityFair      DetectionQuality = "fair"
	QualityPoor      DetectionQuality = "poor"
)

type PoseType string

const (
	PoseUnknown     PoseType = "unknown"
	PoseStanding    PoseType = "standing"
	PoseHandsUp     PoseType = "hands_up"
	PoseLeftHandUp  PoseType = "left_hand_up"
	PoseRightHandUp PoseType = "right_hand_up"
)

type DetectionStats struct {
	VisibleKeypoints int `json:"visible_keypoints"`
	HighConfidence   int `json:"high_confidence"`
	MeasurementCount int `json:"measurement_count"`
}

// PoseDetectionResult is the full per-request payload. Nothing in it
// survives the request.
type PoseDetectionResult struct {
	Success        bool             `json:"success"`
	Keypoints      []Keypoint       `json:"keypoints"`
	Connections    [][2]int         `json:"connections"`
	PoseType       PoseType         `json:"pose_type,omitempty"`
	Measurements   []Measurement    `json:"measurements"`
	Quality        DetectionQuality `json:"quality"`
	Stats          DetectionStats   `json:"stats"`
	AnnotatedImage string           `json:"annotated_image,omitempty"`
	SnapshotURL    string           `json:"snapshot_url,omitempty"`
	Error          string           `json:"error,omitempty"`
}
