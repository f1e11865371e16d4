package poseService

import (
	"PoseVision/internal/api/pose"
	"PoseVision/internal/entity"
	"PoseVision/pkg/annotate"
	contextPkg "PoseVision/pkg/context"
	"PoseVision/pkg/imaging"
	"PoseVision/pkg/landmark"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// DetectPose runs the full pipeline for one request: decode, infer, measure,
// classify, annotate, encode. An annotation/encoding failure degrades to a
// response without the annotated image instead of failing the request.
func (s *poseService) DetectPose(ctx context.Context, imageData string) (*entity.PoseDetectionResult, error) {
	logger := s.log.WithField("request_id", contextPkg.GetRequestID(ctx))

	raw, err := imaging.DecodeBase64(imageData)
	if err != nil {
		logger.Warnf("Rejecting image payload: %v", err)
		return nil, pose.ErrImageDecode
	}

	img, err := imaging.DecodeImage(raw)
	if err != nil {
		logger.Warnf("Rejecting image bytes: %v", err)
		return nil, pose.ErrImageDecode
	}

	keypoints, err := s.landmarks.DetectLandmarks(ctx, raw)
	if err != nil {
		logger.Errorf("Pose inference failed: %v", err)
		return nil, pose.ErrInference
	}

	bounds := img.Bounds()
	result := s.buildResult(keypoints, bounds.Dx(), bounds.Dy())

	if len(keypoints) > 0 {
		annotated := annotate.Draw(img, result.Keypoints, result.Measurements, annotate.DefaultStyle())

		annotatedJPEG, err := imaging.EncodeJPEG(annotated)
		if err != nil {
			logger.Errorf("Failed to encode annotated image: %v", err)
		} else {
			result.AnnotatedImage = imaging.DataURI(annotatedJPEG)

			if s.config.SnapshotEnabled && s.s3Client != nil {
				result.SnapshotURL = s.storeSnapshot(logger, annotatedJPEG)
			}
		}
	}

	result.Success = true
	return result, nil
}

// DetectFrame is the streaming variant: raw frame in, detection out, no
// annotated image on the hot path.
func (s *poseService) DetectFrame(frame []byte) (*entity.PoseDetectionResult, error) {
	img, err := imaging.DecodeImage(frame)
	if err != nil {
		return nil, pose.ErrImageDecode
	}

	keypoints, err := s.landmarks.DetectLandmarks(context.Background(), frame)
	if err != nil {
		return nil, pose.ErrInference
	}

	bounds := img.Bounds()
	result := s.buildResult(keypoints, bounds.Dx(), bounds.Dy())
	result.Success = true
	return result, nil
}

// storeSnapshot uploads the annotated JPEG and returns a presigned link to
// it. Failures never fail the request: an upload error yields no URL, a
// presign error falls back to the raw object location.
func (s *poseService) storeSnapshot(logger *logrus.Entry, annotatedJPEG []byte) string {
	location, err := s.s3Client.UploadSnapshot("pose.jpg", annotatedJPEG, "image/jpeg")
	if err != nil {
		logger.Errorf("Snapshot upload failed: %v", err)
		return ""
	}

	signedURL, err := s.s3Client.PresignUrl(location)
	if err != nil {
		logger.Warnf("Snapshot presign failed: %v", err)
		return location
	}
	return signedURL
}

func (s *poseService) buildResult(keypoints []entity.Keypoint, width, height int) *entity.PoseDetectionResult {
	measurements := computeMeasurements(keypoints, width, height, s.config.VisibilityThreshold)
	quality, stats := classifyQuality(keypoints, s.config.VisibilityThreshold, s.config.HighConfidenceThreshold)
	stats.MeasurementCount = len(measurements)

	visible := make([]entity.Keypoint, 0, len(keypoints))
	for _, kp := range keypoints {
		if kp.Visibility > s.config.VisibilityThreshold {
			visible = append(visible, kp)
		}
	}

	connections := make([][2]int, 0)
	if len(keypoints) > 0 {
		connections = append(connections, landmark.Connections...)
	}

	result := &entity.PoseDetectionResult{
		Keypoints:    visible,
		Connections:  connections,
		Measurements: measurements,
		Quality:      quality,
		Stats:        stats,
	}

	if s.config.ClassifyEnabled {
		result.PoseType = classifyPose(keypoints)
	}

	return result
}
