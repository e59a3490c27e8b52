package display

import (
	"errors"

	"github.com/Lixing-Zhang/menuboard/internal/models"
)

// LoadState tracks one data kind: Idle → Loading → {Loaded, Errored}.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// View is an immutable snapshot of the controller.
type View struct {
	Categories      []models.Category
	Menus           []models.MenuItem
	CurrentCategory *int64

	CategoriesState LoadState
	MenusState      LoadState
	CategoriesErr   error
	MenusErr        error
}

// Tab is one control in the category tab bar. ID is nil for the "All" tab.
type Tab struct {
	ID     *int64
	Name   string
	Active bool
}

// Tabs returns the "All" tab followed by one tab per loaded category, with
// exactly one tab active. A selection that matches no loaded category leaves
// "All" active.
func (v View) Tabs(allLabel string) []Tab {
	tabs := make([]Tab, 0, len(v.Categories)+1)
	tabs = append(tabs, Tab{Name: allLabel})

	matched := false
	for _, cat := range v.Categories {
		id := cat.ID
		active := !matched && v.CurrentCategory != nil && *v.CurrentCategory == id
		if active {
			matched = true
		}
		tabs = append(tabs, Tab{ID: &id, Name: cat.Name, Active: active})
	}
	tabs[0].Active = !matched

	return tabs
}

// GridState is the state the menu grid should show. An error on either kind
// takes the grid over.
func (v View) GridState() LoadState {
	if v.CategoriesState == StateErrored || v.MenusState == StateErrored {
		return StateErrored
	}
	return v.MenusState
}

// Err joins the recorded errors of both kinds.
func (v View) Err() error {
	return errors.Join(v.CategoriesErr, v.MenusErr)
}
