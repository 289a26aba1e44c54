package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dxascend/ascend-core/internal/objecttree"
	"github.com/dxascend/ascend-core/internal/project"
)

// webPrefix is the mount point display clients use for screen routes.
const webPrefix = "/web/"

// routeFields are the object properties that may declare a screen route.
var routeFields = []string{"route", "screenRoute", "screen_route"}

// ObjectSource lists persisted system objects ordered by id.
type ObjectSource interface {
	ListByID(ctx context.Context) ([]objecttree.SystemObject, error)
}

// Candidates expands a route token into the lookups tried in order:
// the token itself, the token without leading slashes, "/"+token when it
// has no leading slash, and "/web/"+stripped unless it already starts with
// /web/. Duplicates are dropped; order is kept.
func Candidates(raw string) []string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil
	}
	stripped := strings.TrimLeft(token, "/")

	out := make([]string, 0, 4)
	add := func(s string) {
		for _, have := range out {
			if have == s {
				return
			}
		}
		out = append(out, s)
	}

	add(token)
	add(stripped)
	if !strings.HasPrefix(token, "/") {
		add("/" + token)
	}
	if !strings.HasPrefix(strings.ToLower(token), webPrefix) {
		add(webPrefix + stripped)
	}
	return out
}

// RouteResolver maps route or name tokens to enabled screens.
type RouteResolver struct {
	screens project.RuntimeStore
	objects ObjectSource
}

// NewRouteResolver creates a resolver over the screen and object stores.
func NewRouteResolver(screens project.RuntimeStore, objects ObjectSource) *RouteResolver {
	return &RouteResolver{screens: screens, objects: objects}
}

// Resolve returns the enabled screen a token designates.
//
// Lookup order, first hit wins:
//  1. screen route equal to a candidate, in candidate order
//  2. screen name equal to the token, ignoring case
//  3. the first system object (by id) whose name equals the token or whose
//     declared route shares a candidate with it, resolved through its
//     screenId, then its declared route, then its name
//
// Blank tokens yield ErrMissingRoute without touching the store.
func (r *RouteResolver) Resolve(ctx context.Context, raw string) (*project.Screen, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil, ErrMissingRoute
	}
	candidates := Candidates(token)

	for _, c := range candidates {
		s, err := found(r.screens.FindEnabledScreenByRoute(ctx, c))
		if s != nil || err != nil {
			return s, err
		}
	}

	s, err := found(r.screens.FindEnabledScreenByName(ctx, token))
	if s != nil || err != nil {
		return s, err
	}

	return r.resolveFromTree(ctx, token, candidates)
}

func (r *RouteResolver) resolveFromTree(ctx context.Context, token string, candidates []string) (*project.Screen, error) {
	objects, err := r.objects.ListByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing system objects: %w", err)
	}

	wanted := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		wanted[strings.TrimLeft(c, "/")] = true
	}

	for _, obj := range objects {
		declared, routeHit := declaredRoute(obj, wanted)
		if !routeHit && !strings.EqualFold(obj.Name, token) {
			continue
		}

		s, err := r.screenForObject(ctx, obj, declared)
		if s != nil || err != nil {
			return s, err
		}
		// A match that leads nowhere does not end the scan.
	}
	return nil, ErrScreenNotFound
}

// declaredRoute returns the first route field of obj that matches wanted.
// Without a match it returns the first non-empty route field and false.
func declaredRoute(obj objecttree.SystemObject, wanted map[string]bool) (string, bool) {
	first := ""
	for _, field := range routeFields {
		route := obj.Properties.Text(field)
		if route == "" {
			continue
		}
		if routeMatches(route, wanted) {
			return route, true
		}
		if first == "" {
			first = route
		}
	}
	return first, false
}

// routeMatches reports whether any candidate form of declared equals a
// wanted form once leading slashes are ignored.
func routeMatches(declared string, wanted map[string]bool) bool {
	for _, c := range Candidates(declared) {
		if wanted[strings.TrimLeft(c, "/")] {
			return true
		}
	}
	return false
}

func (r *RouteResolver) screenForObject(ctx context.Context, obj objecttree.SystemObject, declared string) (*project.Screen, error) {
	if id, ok := obj.LinkedScreenID(); ok {
		s, err := found(r.screens.GetEnabledScreen(ctx, id))
		if s != nil || err != nil {
			return s, err
		}
	}
	if declared != "" {
		s, err := found(r.screens.FindEnabledScreenByRoute(ctx, declared))
		if s != nil || err != nil {
			return s, err
		}
	}
	return found(r.screens.FindEnabledScreenByName(ctx, obj.Name))
}

// found turns a not-found lookup into (nil, nil) so callers can fall through.
func found(s *project.Screen, err error) (*project.Screen, error) {
	if errors.Is(err, project.ErrScreenNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
