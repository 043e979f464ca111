package employee

import (
	"strings"
	"testing"
)

func TestBuildListWhereEmpty(t *testing.T) {
	where, args := buildListWhere(ListFilter{})
	if where != " WHERE 1=1" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildListWhereSearch(t *testing.T) {
	where, args := buildListWhere(ListFilter{Search: "john"})
	for _, column := range []string{"first_name", "last_name", "email", "employee_code"} {
		if !strings.Contains(where, column+" ILIKE $1") {
			t.Fatalf("expected %s match in %q", column, where)
		}
	}
	if len(args) != 1 || args[0] != "%john%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListWhereSearchAndDepartment(t *testing.T) {
	where, args := buildListWhere(ListFilter{Search: "doe", Department: "Engineering"})
	if !strings.Contains(where, "department = $2") {
		t.Fatalf("expected department to bind after search: %q", where)
	}
	if len(args) != 2 || args[1] != "Engineering" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListWhereDepartmentOnly(t *testing.T) {
	where, args := buildListWhere(ListFilter{Department: " HR "})
	if !strings.Contains(where, "department = $1") {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 1 || args[0] != "HR" {
		t.Fatalf("expected trimmed department, got %v", args)
	}
}
