package landmark

import (
	"PoseVision/internal/entity"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/context"
)

// ILandmark is the handle to the external pose model service. The underlying
// model is expensive to construct and not re-entrant, so one connection is
// held for the process and all calls are serialized through it.
type ILandmark interface {
	DetectLandmarks(ctx context.Context, frame []byte) ([]entity.Keypoint, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type landmarkClient struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// inferenceResponse is the wire format the model service replies with.
// An absent or empty landmark list means no body was detected.
type inferenceResponse struct {
	Landmarks []struct {
		Index      int     `json:"index"`
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Z          float64 `json:"z"`
		Visibility float64 `json:"visibility"`
	} `json:"landmarks"`
	Error string `json:"error,omitempty"`
}

func NewPoseModelClient() ILandmark {
	client := &landmarkClient{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go func() {
		if err := client.Reconnect(); err != nil {
			log.Printf("Initial connection to pose model service failed: %v. Will retry on demand.", err)
		} else {
			log.Printf("Successfully connected to pose model service")
		}
	}()

	return client
}

func (c *landmarkClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *landmarkClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	url := os.Getenv("AI_POSE_DETECTION_URL")
	if url == "" {
		url = "ws://localhost:8500/pose/ws"
	}

	log.Printf("Connecting to pose model service at %s", url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive()

	return nil
}

func (c *landmarkClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *landmarkClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		conn := c.conn
		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(
			websocket.PingMessage,
			[]byte{},
			time.Now().Add(c.writeTimeout),
		)
		if err != nil {
			log.Printf("Ping failed for pose model service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// DetectLandmarks sends one encoded image frame to the model service and
// returns the keypoints it reports. A nil slice with a nil error means the
// model saw no body in the frame. The context deadline caps the round trip,
// tightening the client's own read/write timeouts when it is shorter.
func (c *landmarkClient) DetectLandmarks(ctx context.Context, frame []byte) ([]entity.Keypoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pose model request aborted: %w", err)
	}

	writeDeadline := time.Now().Add(c.writeTimeout)
	readDeadline := time.Now().Add(c.readTimeout)
	if deadline, ok := ctx.Deadline(); ok {
		if deadline.Before(writeDeadline) {
			writeDeadline = deadline
		}
		if deadline.Before(readDeadline) {
			readDeadline = deadline
		}
	}

	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		if err := c.Reconnect(); err != nil {
			return nil, fmt.Errorf("cannot connect to pose model service: %w", err)
		}
		c.mu.Lock()
	}
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("not connected to pose model service")
	}

	conn.SetWriteDeadline(writeDeadline)

	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.conn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(readDeadline)

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.conn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error reading model response: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	var result inferenceResponse
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling model response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("pose model service error: %s", result.Error)
	}

	keypoints := make([]entity.Keypoint, 0, len(result.Landmarks))
	for _, lm := range result.Landmarks {
		keypoints = append(keypoints, entity.Keypoint{
			Index:      lm.Index,
			Name:       Name(lm.Index),
			X:          lm.X,
			Y:          lm.Y,
			Z:          lm.Z,
			Visibility: lm.Visibility,
		})
	}

	return keypoints, nil
}
