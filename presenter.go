package lumen

// Presenter receives one finished frame of packed instances. Display
// mechanics (GPU upload, windowing) live entirely behind this interface; the
// simulation only guarantees an index-stable batch of Len() instances per
// frame.
type Presenter interface {
	PresentFrame(frame uint64, instances []ParticleInstance)
}

// PresenterFunc adapts a plain function to the Presenter interface.
type PresenterFunc func(frame uint64, instances []ParticleInstance)

func (f PresenterFunc) PresentFrame(frame uint64, instances []ParticleInstance) {
	f(frame, instances)
}

// PresenterSet fans one frame out to every attached presenter, in attach
// order. An empty set is valid; the simulation keeps advancing regardless.
type PresenterSet struct {
	presenters []Presenter
}

func (s *PresenterSet) Attach(p Presenter) {
	if p == nil {
		return
	}
	s.presenters = append(s.presenters, p)
}

func (s *PresenterSet) Len() int { return len(s.presenters) }

func (s *PresenterSet) broadcast(frame uint64, instances []ParticleInstance) {
	for _, p := range s.presenters {
		p.PresentFrame(frame, instances)
	}
}

// FrameOutput holds the most recent simulation result between the Update and
// Present stages.
type FrameOutput struct {
	Frame     uint64
	Instances []ParticleInstance
}
