package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the authentication principal. Email is the login identifier;
// department memberships drive record visibility.
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Username  string  `gorm:"size:18;uniqueIndex;not null" json:"username"`
	FirstName string  `gorm:"size:30" json:"first_name"`
	LastName  string  `gorm:"size:30" json:"last_name"`
	Bio       *string `gorm:"size:1012" json:"bio,omitempty"`
	Website   *string `json:"website,omitempty"`
	Phone     *string `gorm:"size:20" json:"phone,omitempty"`
	Password  string  `gorm:"not null" json:"-"`

	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// Relationships
	Departments []Department `gorm:"many2many:user_departments" json:"departments,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// InDepartment reports whether the user belongs to the named department
func (u *User) InDepartment(name string) bool {
	for _, d := range u.Departments {
		if d.Name == name {
			return true
		}
	}
	return false
}

// DepartmentIDs returns the IDs of the user's departments
func (u *User) DepartmentIDs() []string {
	ids := make([]string, 0, len(u.Departments))
	for _, d := range u.Departments {
		ids = append(ids, d.ID)
	}
	return ids
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
