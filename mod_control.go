package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ControlState is the shared control snapshot an external signal producer
// steers the simulation with. It lives for the whole application; the
// producer mutates it in place through the setters, the simulation reads
// whatever values are current when its frame runs. Fields are plain scalars,
// so a frame that sees a half-updated snapshot is acceptable; the engine
// defends against out-of-range values itself.
type ControlState struct {
	Template    TemplateId
	Expansion   float32
	TargetColor [4]float32
	Anchor      mgl32.Vec3
}

func NewControlState() *ControlState {
	return &ControlState{
		Template:    TemplateFireworks,
		Expansion:   0,
		TargetColor: NamedColor("white"),
		Anchor:      mgl32.Vec3{},
	}
}

func (c *ControlState) SetTemplate(id TemplateId) {
	c.Template = id
}

func (c *ControlState) SetExpansion(v float32) {
	c.Expansion = v
}

func (c *ControlState) SetAnchor(p mgl32.Vec3) {
	c.Anchor = p
}

func (c *ControlState) SetTargetColor(col [4]float32) {
	c.TargetColor = col
}

// ControlModule installs the shared ControlState resource with its defaults.
type ControlModule struct{}

func (m ControlModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewControlState())
}
