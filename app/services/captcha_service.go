package services

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/amirphl/Omoikane/utils"
	"github.com/google/uuid"
	"github.com/wenlng/go-captcha/v2/rotate"
	"golang.org/x/image/draw"
)

var ErrCaptchaGeneration = errors.New("captcha generation returned no data")

// CaptchaService generates and verifies rotate captchas for the admin login.
//
// Generate returns a challenge ID with the master and thumb images as base64. The client
// rotates the thumb and posts the angle back with the challenge ID. A challenge can be
// verified once; it is consumed whether or not the angle matched.
type CaptchaService interface {
	GenerateRotate(ctx context.Context) (*RotateChallenge, error)
	VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool
	Close()
}

type RotateChallenge struct {
	ID                string
	MasterImageBase64 string
	ThumbImageBase64  string
}

type captchaServiceImpl struct {
	rotator rotate.Captcha
	store   *challengeStore
	padding int // accepted angle difference in degrees
}

// NewCaptchaServiceRotate constructs a CaptchaService using rotate mode.
// Challenges live for ttl; imgSizePx is the square image size (220 when not positive).
func NewCaptchaServiceRotate(ttl time.Duration, padding int, imgSizePx int) (CaptchaService, error) {
	if imgSizePx <= 0 {
		imgSizePx = 220
	}

	builder := rotate.NewBuilder(
		rotate.WithImageSquareSize(imgSizePx),
	)
	builder.SetResources(
		rotate.WithImages(generateRotateBackgrounds(3, imgSizePx)),
	)

	return &captchaServiceImpl{
		rotator: builder.Make(),
		store:   newChallengeStore(ttl),
		padding: padding,
	}, nil
}

func (s *captchaServiceImpl) GenerateRotate(_ context.Context) (*RotateChallenge, error) {
	captData, err := s.rotator.Generate()
	if err != nil {
		return nil, err
	}

	block := captData.GetData()
	if block == nil {
		return nil, ErrCaptchaGeneration
	}

	masterB64, err := captData.GetMasterImage().ToBase64()
	if err != nil {
		return nil, err
	}
	thumbB64, err := captData.GetThumbImage().ToBase64()
	if err != nil {
		return nil, err
	}

	challengeID := uuid.New().String()
	s.store.Set(challengeID, block.Angle)

	return &RotateChallenge{
		ID:                challengeID,
		MasterImageBase64: masterB64,
		ThumbImageBase64:  thumbB64,
	}, nil
}

func (s *captchaServiceImpl) VerifyRotate(_ context.Context, challengeID string, userAngle float64) bool {
	target, ok := s.store.Take(challengeID)
	if !ok {
		return false
	}

	return rotate.Validate(int(math.Round(userAngle)), target, s.padding)
}

func (s *captchaServiceImpl) Close() {
	s.store.Close()
}

type challengeEntry struct {
	targetAngle int
	expiresAt   time.Time
}

// challengeStore keeps target angles in memory until they are taken or expire
type challengeStore struct {
	mu   sync.Mutex
	m    map[string]challengeEntry
	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

func newChallengeStore(ttl time.Duration) *challengeStore {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	cs := &challengeStore{
		m:    make(map[string]challengeEntry),
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go cs.cleanupLoop()
	return cs
}

func (s *challengeStore) Set(id string, targetAngle int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = challengeEntry{targetAngle: targetAngle, expiresAt: utils.UTCNowAdd(s.ttl)}
}

// Take removes the challenge and returns its angle if it had not expired
func (s *challengeStore) Take(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		return 0, false
	}
	delete(s.m, id)
	if utils.IsExpired(e.expiresAt) {
		return 0, false
	}
	return e.targetAngle, true
}

func (s *challengeStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *challengeStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			for k, v := range s.m {
				if utils.IsExpired(v.expiresAt) {
					delete(s.m, k)
				}
			}
			s.mu.Unlock()
		}
	}
}

func generateRotateBackgrounds(n int, size int) []image.Image {
	if n <= 0 {
		n = 1
	}
	imgs := make([]image.Image, 0, n)
	for range n {
		imgs = append(imgs, newNoiseGradientImage(size, size))
	}
	return imgs
}

func newNoiseGradientImage(w, h int) image.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	// radial gradient with noise
	for y := range h {
		for x := range w {
			dx := float64(x - w/2)
			dy := float64(y - h/2)
			t := math.Min(math.Sqrt(dx*dx+dy*dy)/float64(w/2), 1)
			base := uint8(200 - int(150*t))
			noise := uint8(rand.Intn(30))
			rgba.Set(x, y, color.RGBA{R: base + noise/3, G: base, B: 255 - base/2, A: 255})
		}
	}

	// a scaled stripe keeps the images from being rotationally symmetric
	stripe := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 40})
	draw.Draw(rgba, image.Rect(10, 10, 10+w/3, 10+h/12), stripe, image.Point{}, draw.Over)
	shade := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(shade, shade.Bounds(), image.NewUniform(color.RGBA{A: 24}), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(rgba, image.Rect(w/2, h/3, w/2+w/3, h/3+h/10), shade, shade.Bounds(), draw.Over, nil)
	return rgba
}
