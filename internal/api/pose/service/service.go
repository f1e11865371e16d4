package poseService

import (
	"PoseVision/internal/entity"
	"PoseVision/pkg/landmark"
	"PoseVision/pkg/s3"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPoseService interface {
	DetectPose(ctx context.Context, imageData string) (*entity.PoseDetectionResult, error)
	DetectFrame(frame []byte) (*entity.PoseDetectionResult, error)
}

// Config unifies the two historical pipeline variants: thresholds and the
// optional classification stage are explicit settings instead of parallel
// code paths.
type Config struct {
	VisibilityThreshold     float64
	HighConfidenceThreshold float64
	ClassifyEnabled         bool
	SnapshotEnabled         bool
}

func ConfigFromEnv() Config {
	cfg := Config{
		VisibilityThreshold:     0.3,
		HighConfidenceThreshold: 0.7,
		ClassifyEnabled:         true,
	}

	if v := os.Getenv("POSE_VISIBILITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.VisibilityThreshold = f
		}
	}
	if v := os.Getenv("POSE_CLASSIFY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ClassifyEnabled = b
		}
	}
	if v := os.Getenv("POSE_SNAPSHOT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SnapshotEnabled = b
		}
	}

	return cfg
}

type poseService struct {
	log       *logrus.Logger
	landmarks landmark.ILandmark
	s3Client  s3.ItfS3
	config    Config
}

func NewPoseService(
	log *logrus.Logger,
	landmarks landmark.ILandmark,
	s3Client s3.ItfS3,
	config Config,
) IPoseService {
	return &poseService{
		log:       log,
		landmarks: landmarks,
		s3Client:  s3Client,
		config:    config,
	}
}
