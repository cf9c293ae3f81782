package seed

import (
	"context"
	"log"

	"github.com/smartcampus/allocator/internal/models"
	"github.com/smartcampus/allocator/internal/service"
)

type demoUser struct {
	name string
	role models.Role
}

type demoResource struct {
	name        string
	capacity    int
	location    string
	description string
}

var demoUsers = []demoUser{
	{"Dr. Sarah Johnson", models.RoleFaculty},
	{"Prof. Michael Chen", models.RoleFaculty},
	{"Alice Smith", models.RoleStudent},
	{"Bob Wilson", models.RoleStudent},
	{"Dr. Emily Davis", models.RoleFaculty},
	{"Charlie Brown", models.RoleStudent},
	{"Diana Martinez", models.RoleStudent},
	{"Prof. James Taylor", models.RoleFaculty},
}

var demoResources = []demoResource{
	{"Computer Lab A", 30, "Building 1, Floor 2", "Main computer lab with 30 workstations"},
	{"Seminar Hall 1", 50, "Building 2, Floor 1", "Large seminar hall for presentations"},
	{"Conference Room B", 12, "Building 1, Floor 3", "Small conference room for meetings"},
	{"Physics Lab", 20, "Science Building, Floor 2", "Physics laboratory with equipment"},
	{"Library Study Room", 8, "Library, Floor 3", "Quiet study room for group work"},
	{"Auditorium", 200, "Main Building", "Large auditorium for events"},
	{"Chemistry Lab", 25, "Science Building, Floor 1", "Chemistry laboratory"},
	{"Meeting Room C", 6, "Administration Building", "Small meeting room"},
}

// Demo registers the sample campus dataset through the allocation service.
func Demo(ctx context.Context, svc service.AllocationService) error {
	for _, u := range demoUsers {
		if _, err := svc.RegisterUser(ctx, u.name, u.role); err != nil {
			return err
		}
	}
	for _, r := range demoResources {
		if _, err := svc.RegisterResource(ctx, r.name, r.capacity, r.location, r.description); err != nil {
			return err
		}
	}
	log.Printf("[Seed] loaded %d users and %d resources", len(demoUsers), len(demoResources))
	return nil
}
