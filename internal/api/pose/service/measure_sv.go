package poseService

import (
	"PoseVision/internal/entity"
	"PoseVision/pkg/landmark"
	"math"
)

type measurementPair struct {
	a, b  int
	label string
}

// measurementPairs is the fixed configuration table of keypoint pairs to
// measure. Output order follows this table.
var measurementPairs = []measurementPair{
	{landmark.LeftShoulder, landmark.RightShoulder, "shoulder_width"},
	{landmark.LeftWrist, landmark.RightWrist, "wrist_span"},
	{landmark.LeftHip, landmark.RightHip, "hip_width"},
	{landmark.LeftAnkle, landmark.RightAnkle, "ankle_span"},
	{landmark.LeftShoulder, landmark.LeftElbow, "left_upper_arm"},
	{landmark.LeftElbow, landmark.LeftWrist, "left_forearm"},
	{landmark.RightShoulder, landmark.RightElbow, "right_upper_arm"},
	{landmark.RightElbow, landmark.RightWrist, "right_forearm"},
}

func toPixel(kp entity.Keypoint, width, height int) entity.PixelPoint {
	return entity.PixelPoint{
		Name: kp.Name,
		X:    int(math.Round(kp.X * float64(width))),
		Y:    int(math.Round(kp.Y * float64(height))),
	}
}

func pixelDistance(a, b entity.PixelPoint) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// computeMeasurements derives a pixel distance for every configured pair
// whose endpoints both exist and clear the visibility threshold.
func computeMeasurements(keypoints []entity.Keypoint, width, height int, threshold float64) []entity.Measurement {
	measurements := make([]entity.Measurement, 0, len(measurementPairs))

	for _, pair := range measurementPairs {
		if pair.a >= len(keypoints) || pair.b >= len(keypoints) {
			continue
		}

		a := keypoints[pair.a]
		b := keypoints[pair.b]
		if a.Visibility <= threshold || b.Visibility <= threshold {
			continue
		}

		from := toPixel(a, width, height)
		to := toPixel(b, width, height)

		measurements = append(measurements, entity.Measurement{
			Label:          pair.label,
			DistancePixels: pixelDistance(from, to),
			From:           from,
			To:             to,
		})
	}

	return measurements
}

// classifyQuality buckets the detection by the fraction of high-confidence
// keypoints among the visible ones. An empty set is poor by definition.
func classifyQuality(keypoints []entity.Keypoint, visibilityThreshold, highThreshold float64) (entity.DetectionQuality, entity.DetectionStats) {
	var stats entity.DetectionStats

	for _, kp := range keypoints {
		if kp.Visibility > visibilityThreshold {
			stats.VisibleKeypoints++
		}
		if kp.Visibility > highThreshold {
			stats.HighConfidence++
		}
	}

	if stats.VisibleKeypoints == 0 {
		return entity.QualityPoor, stats
	}

	ratio := float64(stats.HighConfidence) / float64(stats.VisibleKeypoints)
	switch {
	case ratio > 0.8:
		return entity.QualityExcellent, stats
	case ratio > 0.6:
		return entity.QualityGood, stats
	case ratio > 0.4:
		return entity.QualityFair, stats
	default:
		return entity.QualityPoor, stats
	}
}
