package planner

import (
	"fmt"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

// AddEvent creates an event and selects it.
func (p *Planner) AddEvent(in model.EventInput) (model.Event, error) {
	if err := in.Validate(); err != nil {
		return model.Event{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	e := model.Event{
		ID:        p.newID(),
		Name:      in.Name,
		Type:      in.Type,
		Color:     in.Color,
		CreatedAt: p.now(),
		Budget:    in.Budget,
	}.Clone()
	p.events = append(p.events, e)
	p.save(store.KeyEvents, p.events)

	out := e.Clone()
	b.add(Change{Kind: KindEvent, Action: ActionCreate, ID: e.ID, Origin: OriginLocal, Event: &out})
	p.setSelection(e.ID, OriginLocal, &b)
	return e.Clone(), nil
}

func (p *Planner) UpdateEvent(id string, patch model.EventPatch) (model.Event, error) {
	if err := patch.Validate(); err != nil {
		return model.Event{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.eventIndex(id)
	if i < 0 {
		return model.Event{}, fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	e := patch.Apply(p.events[i])
	p.events[i] = e
	p.save(store.KeyEvents, p.events)

	out := e.Clone()
	b.add(Change{Kind: KindEvent, Action: ActionUpdate, ID: id, Origin: OriginLocal, Event: &out})
	return e.Clone(), nil
}

// DeleteEvent removes the event and clears the selection if it pointed
// there. Linked projects are kept.
func (p *Planner) DeleteEvent(id string) error {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.eventIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	removed := p.events[i]
	p.events = append(p.events[:i:i], p.events[i+1:]...)
	p.save(store.KeyEvents, p.events)

	b.add(Change{Kind: KindEvent, Action: ActionDelete, ID: id, Origin: OriginLocal, Event: &removed})
	if p.selected == id {
		p.setSelection("", OriginLocal, &b)
	}
	return nil
}

func (p *Planner) Event(id string) (model.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.eventIndex(id)
	if i < 0 {
		return model.Event{}, fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	return p.events[i].Clone(), nil
}

func (p *Planner) Events() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneEvents(p.events)
}

// SelectEvent scopes every scoped read to id.
func (p *Planner) SelectEvent(id string) error {
	if id == "" {
		return p.ClearSelection()
	}
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	if p.eventIndex(id) < 0 {
		return fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	p.setSelection(id, OriginLocal, &b)
	return nil
}

// ClearSelection removes the event scope.
func (p *Planner) ClearSelection() error {
	p.mu.Lock()
	var b batch
	defer p.release(&b)
	p.setSelection("", OriginLocal, &b)
	return nil
}

// SelectedEventID returns the selected event id, or "" when none.
func (p *Planner) SelectedEventID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// SelectedEvent returns the selected event, if any.
func (p *Planner) SelectedEvent() (model.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := p.eventIndex(p.selected); p.selected != "" && i >= 0 {
		return p.events[i].Clone(), true
	}
	return model.Event{}, false
}

func (p *Planner) setSelection(id string, origin Origin, b *batch) {
	if p.selected == id {
		return
	}
	prev := p.selected
	p.selected = id
	if id == "" {
		p.w.Remove(store.KeySelectedEvent)
		b.add(Change{Kind: KindSelection, Action: ActionDelete, ID: prev, Origin: origin})
		return
	}
	p.w.Set(store.KeySelectedEvent, []byte(id))
	b.add(Change{Kind: KindSelection, Action: ActionUpdate, ID: id, Origin: origin})
}
