package domain

import (
	"errors"
	"testing"
)

func TestRole_Meets(t *testing.T) {
	if !RoleAdmin.Meets(RoleReader) || !RoleAdmin.Meets(RoleAuthor) || !RoleAdmin.Meets(RoleAdmin) {
		t.Error("ADMIN must meet every minimum")
	}
	if RoleReader.Meets(RoleAuthor) {
		t.Error("READER must not meet AUTHOR")
	}
	if Role("EDITOR").Meets(RoleReader) {
		t.Error("unknown roles must meet nothing")
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"READER", "AUTHOR", "ADMIN"} {
		role, err := ParseRole(valid)
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error: %v", valid, err)
		}
		if string(role) != valid {
			t.Errorf("ParseRole(%q) = %q", valid, role)
		}
	}

	for _, invalid := range []string{"", "reader", "SUPERUSER", "admin "} {
		if _, err := ParseRole(invalid); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("ParseRole(%q): expected ErrInvalidRole, got: %v", invalid, err)
		}
	}
}

func TestArticle_VisibleTo(t *testing.T) {
	draft := &Article{ID: "a-1", AuthorUserID: "author-1", Published: false}
	published := &Article{ID: "a-2", AuthorUserID: "author-1", Published: true}

	if draft.VisibleTo("") {
		t.Error("draft must be hidden from anonymous viewers")
	}
	if draft.VisibleTo("stranger") {
		t.Error("draft must be hidden from non-owners")
	}
	if !draft.VisibleTo("author-1") {
		t.Error("draft must be visible to its owner")
	}
	if !published.VisibleTo("") {
		t.Error("published article must be visible to everyone")
	}
}
