package poseHandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"PoseVision/internal/api/pose"
	"PoseVision/internal/entity"
	"PoseVision/internal/middleware"
	"PoseVision/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type stubPoseService struct {
	result    *entity.PoseDetectionResult
	err       error
	lastImage string
}

func (s *stubPoseService) DetectPose(ctx context.Context, imageData string) (*entity.PoseDetectionResult, error) {
	s.lastImage = imageData
	return s.result, s.err
}

func (s *stubPoseService) DetectFrame(frame []byte) (*entity.PoseDetectionResult, error) {
	return s.result, s.err
}

func newTestApp(svc *stubPoseService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	handler := New(logger, validator.New(), middleware.New(logger), svc, utils.New())
	handler.Start(app.Group("/api/v1"))
	return app
}

func postDetect(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/pose/detect", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return resp.StatusCode, payload
}

func TestDetectPoseMissingImage(t *testing.T) {
	app := newTestApp(&stubPoseService{})

	status, payload := postDetect(t, app, `{}`)

	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if payload["success"] != false {
		t.Error("expected success=false")
	}
	if payload["error"] != "No image data provided" {
		t.Errorf("unexpected error message: %v", payload["error"])
	}
}

func TestDetectPoseMalformedBody(t *testing.T) {
	app := newTestApp(&stubPoseService{})

	status, payload := postDetect(t, app, `not json at all`)

	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if payload["error"] != "No image data provided" {
		t.Errorf("unexpected error message: %v", payload["error"])
	}
}

func TestDetectPoseDecodeFailure(t *testing.T) {
	app := newTestApp(&stubPoseService{err: pose.ErrImageDecode})

	status, payload := postDetect(t, app, `{"image":"data:image/png;base64,broken"}`)

	if status != fiber.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if payload["success"] != false {
		t.Error("expected success=false")
	}
	if payload["error"] != "Unable to decode image data" {
		t.Errorf("unexpected error message: %v", payload["error"])
	}
}

func TestDetectPoseInferenceFailure(t *testing.T) {
	app := newTestApp(&stubPoseService{err: pose.ErrInference})

	status, payload := postDetect(t, app, `{"image":"data:image/png;base64,aGVsbG8="}`)

	if status != fiber.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if payload["error"] != "Pose detection failed" {
		t.Errorf("unexpected error message: %v", payload["error"])
	}
}

func TestDetectPoseUnexpectedError(t *testing.T) {
	app := newTestApp(&stubPoseService{err: errors.New("boom")})

	status, payload := postDetect(t, app, `{"image":"data:image/png;base64,aGVsbG8="}`)

	if status != fiber.StatusInternalServerError {
		t.Errorf("expected 500, got %d", status)
	}
	if payload["error"] != "An unexpected error occurred" {
		t.Errorf("unexpected error message: %v", payload["error"])
	}
	traceID, ok := payload["trace_id"].(string)
	if !ok || traceID == "" {
		t.Error("expected a non-empty trace_id")
	}
}

func TestDetectPoseSuccess(t *testing.T) {
	svc := &stubPoseService{
		result: &entity.PoseDetectionResult{
			Success: true,
			Keypoints: []entity.Keypoint{
				{Index: 0, Name: "nose", X: 0.5, Y: 0.2, Visibility: 0.95},
			},
			Quality: entity.QualityExcellent,
			Stats: entity.DetectionStats{
				VisibleKeypoints: 1,
				HighConfidence:   1,
			},
		},
	}
	app := newTestApp(svc)

	status, payload := postDetect(t, app, `{"image":"data:image/png;base64,aGVsbG8="}`)

	if status != fiber.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if payload["success"] != true {
		t.Error("expected success=true")
	}
	if payload["quality"] != "excellent" {
		t.Errorf("unexpected quality: %v", payload["quality"])
	}
	if svc.lastImage != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("service received wrong payload: %q", svc.lastImage)
	}
}

func TestDetectWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(&stubPoseService{})

	req := httptest.NewRequest("GET", "/api/v1/pose/ws", nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("expected 426, got %d", resp.StatusCode)
	}
}
