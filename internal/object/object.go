// Package object holds the slope entities and the per-tick update contract they share.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Intent is an alias for the input package's Intent type.
type Intent = input.Intent

// Course is the read-only race state entities steer by during a tick.
type Course struct {
	Level     int
	Settings  config.LevelSettings
	Speed     float64 // Current slope speed in units per second
	Score     int
	PlayerX   float64 // Horizontal center of the player
	PlayerY   float64 // Top edge of the player
	Finishing bool    // Distance is used up; the finish row is on its way
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Intent  Intent
	Screen  Screen
	Spawner Spawner
	Objects []Object
	Rand    *rand.Rand
	Course  Course
}

// Seconds returns the frame delta in seconds.
func (ctx UpdateContext) Seconds() float64 {
	return ctx.Delta.Seconds()
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Text   *draw.ChunkWriter
}

// Screen represents the virtual play field dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a screen of the given size.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// DefaultScreen returns the virtual screen every simulation runs in.
func DefaultScreen() Screen {
	return NewScreen(config.ScreenWidth, config.ScreenHeight)
}

// Rect is an axis-aligned bounding box. X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two boxes share any area.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return physics.RectsOverlap(r.X, r.Y, r.W, r.H, o.X, o.Y, o.W, o.H)
}

// CenterX returns the horizontal center of the box.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical center of the box.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Object is a drawable and updatable slope entity.
type Object interface {
	// Update advances the object by one tick. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Bounds returns the collision box. Objects without a body return an empty Rect.
	Bounds() Rect

	// Draw draws the object onto the canvas.
	Draw(ctx DrawContext)
}

// Consumable is implemented by objects that disappear when the player touches them.
type Consumable interface {
	// Consume marks the object for removal on the next prune.
	Consume()
	// Consumed returns true if the object was touched.
	Consumed() bool
}

// IsGone reports whether obj was consumed and should be pruned.
func IsGone(obj Object) bool {
	c, ok := obj.(Consumable)
	return ok && c.Consumed()
}

// drawBox fills a rectangle on the canvas with the given color.
func drawBox(ctx DrawContext, r Rect, color draw.Color) {
	if ctx.Canvas == nil {
		return
	}
	ctx.Canvas.SetPen(color)
	ctx.Canvas.FillRect(r.X, r.Y, r.W, r.H)
}
