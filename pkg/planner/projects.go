package planner

import (
	"fmt"
	"log"
	"strings"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

// AddProject creates a project. A link to an unknown event is dropped and
// the project is left unscoped.
func (p *Planner) AddProject(in model.ProjectInput) (model.Project, error) {
	if err := in.Validate(); err != nil {
		return model.Project{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	if in.EventID != "" && p.eventIndex(in.EventID) < 0 {
		log.Printf("planner: project %q references unknown event %q, leaving it unscoped", in.Name, in.EventID)
		in.EventID = ""
	}
	pr := model.Project{
		ID:         p.newID(),
		Name:       in.Name,
		Color:      in.Color,
		Icon:       in.Icon,
		CreatedAt:  p.now(),
		SharedWith: append([]string{}, in.SharedWith...),
		EventID:    in.EventID,
	}
	p.projects = append(p.projects, pr)
	p.save(store.KeyProjects, p.projects)

	out := pr.Clone()
	b.add(Change{Kind: KindProject, Action: ActionCreate, ID: pr.ID, Origin: OriginLocal, Project: &out})
	return pr.Clone(), nil
}

func (p *Planner) UpdateProject(id string, patch model.ProjectPatch) (model.Project, error) {
	if err := patch.Validate(); err != nil {
		return model.Project{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.projectIndex(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	if patch.EventID != nil && *patch.EventID != "" && p.eventIndex(*patch.EventID) < 0 {
		return model.Project{}, fmt.Errorf("%w: event %q", ErrNotFound, *patch.EventID)
	}
	return p.replaceProject(i, patch.Apply(p.projects[i]), &b), nil
}

// ShareProject adds userIDs to the project's share list, ignoring ids
// already present.
func (p *Planner) ShareProject(id string, userIDs ...string) (model.Project, error) {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.projectIndex(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	pr := p.projects[i].Clone()
	for _, u := range userIDs {
		u = strings.TrimSpace(u)
		if u != "" && !pr.SharedWithUser(u) {
			pr.SharedWith = append(pr.SharedWith, u)
		}
	}
	return p.replaceProject(i, pr, &b), nil
}

func (p *Planner) replaceProject(i int, pr model.Project, b *batch) model.Project {
	p.projects[i] = pr
	p.save(store.KeyProjects, p.projects)

	out := pr.Clone()
	b.add(Change{Kind: KindProject, Action: ActionUpdate, ID: pr.ID, Origin: OriginLocal, Project: &out})
	return pr.Clone()
}

// DeleteProject removes the project only. Its tasks keep their project id.
func (p *Planner) DeleteProject(id string) error {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.projectIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	removed := p.projects[i]
	p.projects = append(p.projects[:i:i], p.projects[i+1:]...)
	p.save(store.KeyProjects, p.projects)

	b.add(Change{Kind: KindProject, Action: ActionDelete, ID: id, Origin: OriginLocal, Project: &removed})
	return nil
}

func (p *Planner) Project(id string) (model.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.projectIndex(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	return p.projects[i].Clone(), nil
}

func (p *Planner) Projects() []model.Project {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneProjects(p.projects)
}
