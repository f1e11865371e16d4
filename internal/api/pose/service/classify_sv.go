package poseService

import (
	"PoseVision/internal/entity"
	"PoseVision/pkg/landmark"
)

// classifyPose applies the raised-hands heuristic: a wrist above its
// shoulder (smaller y in image coordinates) counts as raised. Needs the
// upper-body landmarks, so anything shorter than 25 keypoints is unknown.
func classifyPose(keypoints []entity.Keypoint) entity.PoseType {
	if len(keypoints) < 25 {
		return entity.PoseUnknown
	}

	leftUp := keypoints[landmark.LeftWrist].Y < keypoints[landmark.LeftShoulder].Y
	rightUp := keypoints[landmark.RightWrist].Y < keypoints[landmark.RightShoulder].Y

	switch {
	case leftUp && rightUp:
		return entity.PoseHandsUp
	case leftUp:
		return entity.PoseLeftHandUp
	case rightUp:
		return entity.PoseRightHandUp
	default:
		return entity.PoseStanding
	}
}
