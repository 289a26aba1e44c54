package objecttree

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dxascend/ascend-core/internal/document"
	"github.com/dxascend/ascend-core/internal/project"
)

// ScreenLister supplies the enabled screens that may need virtual nodes.
type ScreenLister interface {
	ListEnabledScreens(ctx context.Context) ([]project.Screen, error)
}

// Service exposes the reconciled tree and the object lifecycle.
type Service struct {
	repo    Repository
	screens ScreenLister
	events  EventPublisher
	logger  Logger
	now     func() time.Time
}

// NewService creates a tree service over the object and screen stores.
func NewService(repo Repository, screens ScreenLister) *Service {
	return &Service{
		repo:    repo,
		screens: screens,
		logger:  noopLogger{},
		now:     time.Now,
	}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// SetEventPublisher enables change events. Nil disables them.
func (s *Service) SetEventPublisher(events EventPublisher) {
	s.events = events
}

// List returns persisted objects (type descending, then name) followed by
// one virtual Graphic node per enabled screen that no object links to.
func (s *Service) List(ctx context.Context) ([]SystemObject, error) {
	objects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	screens, err := s.screens.ListEnabledScreens(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing screens: %w", err)
	}
	return append(objects, VirtualNodes(objects, screens)...), nil
}

// VirtualNodes synthesizes nodes for screens that no object links to.
// Screens keep their input order.
func VirtualNodes(objects []SystemObject, screens []project.Screen) []SystemObject {
	linked := make(map[int64]bool, len(objects))
	for _, o := range objects {
		if id, ok := o.LinkedScreenID(); ok {
			linked[id] = true
		}
	}

	parent := containerParent(objects)
	var nodes []SystemObject
	for _, sc := range screens {
		if linked[sc.ID] {
			continue
		}
		nodes = append(nodes, SystemObject{
			ID:          VirtualIDOffset + sc.ID,
			ParentID:    parent,
			Name:        sc.Name,
			Type:        GraphicType,
			Description: sc.Description,
			Properties: document.Document{
				"screenId": sc.ID,
				"route":    sc.Route,
				"virtual":  true,
			},
			Virtual: true,
		})
	}
	return nodes
}

// containerParent picks the parent for virtual nodes: the first object
// whose type or name mentions "graphic", else the first root object.
func containerParent(objects []SystemObject) *int64 {
	for _, o := range objects {
		if strings.Contains(strings.ToLower(o.Type), "graphic") ||
			strings.Contains(strings.ToLower(o.Name), "graphic") {
			id := o.ID
			return &id
		}
	}
	for _, o := range objects {
		if o.ParentID == nil {
			id := o.ID
			return &id
		}
	}
	return nil
}

// Create inserts an object. Graphic objects get a backing screen in the
// same transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*SystemObject, error) {
	if !strings.EqualFold(in.Type, GraphicType) {
		obj, err := s.repo.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		s.publish(ctx, Event{Type: EventObjectCreated, ObjectID: obj.ID})
		return obj, nil
	}

	obj, screen, err := s.repo.CreateGraphic(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("graphic created", "object_id", obj.ID, "screen_id", screen.ID, "route", screen.Route)
	s.publish(ctx, Event{Type: EventScreenCreated, ScreenID: screen.ID, Route: screen.Route})
	s.publish(ctx, Event{Type: EventObjectCreated, ObjectID: obj.ID, ScreenID: screen.ID, Route: screen.Route})
	return obj, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*SystemObject, error) {
	obj, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, Event{Type: EventObjectUpdated, ObjectID: id})
	return obj, nil
}

// Delete hard-deletes an object. A screen it linked reappears as a
// virtual node on the next List.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, Event{Type: EventObjectDeleted, ObjectID: id})
	return nil
}

func (s *Service) publish(ctx context.Context, ev Event) {
	if s.events == nil {
		return
	}
	ev.Timestamp = s.now().UTC()
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		s.logger.Warn("publishing tree event failed", "type", ev.Type, "error", err)
	}
}
