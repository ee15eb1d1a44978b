package models

import (
	"time"

	"gorm.io/gorm"
)

// Account roles
const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
)

type User struct {
	UserID      uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Handle      string     `gorm:"column:handle;unique" json:"handle"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role;default:job_seeker" json:"role"`
	PhoneNumber *string    `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Birthday    *time.Time `gorm:"column:birthday" json:"birthday,omitempty"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Profile Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (u *User) IsEmployer() bool { return u.Role == RoleEmployer }

// Profile visibility
const (
	VisibilityPublic    = "public"
	VisibilityEmployers = "employers"
	VisibilityPrivate   = "private"
)

type Profile struct {
	ProfileID uint `gorm:"primaryKey;column:profile_id" json:"profile_id"`
	UserID    uint `gorm:"column:user_id;unique" json:"user_id"`

	FullName    *string `gorm:"column:full_name" json:"full_name,omitempty"`
	PhoneNumber *string `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Location    *string `gorm:"column:location" json:"location,omitempty"`
	Bio         *string `gorm:"column:bio" json:"bio,omitempty"`
	CompanyName *string `gorm:"column:company_name" json:"company_name,omitempty"`

	// Job preferences
	PreferredJobTitles string `gorm:"column:preferred_job_titles" json:"preferred_job_titles"`
	JobCategories      string `gorm:"column:job_categories" json:"job_categories"`
	EmploymentType     string `gorm:"column:employment_type" json:"employment_type"`
	PreferredLocation  string `gorm:"column:preferred_location" json:"preferred_location"`

	// Privacy settings
	ProfileVisibility string `gorm:"column:profile_visibility;default:employers" json:"profile_visibility"`
	AllowContact      bool   `gorm:"column:allow_contact;default:true" json:"allow_contact"`

	// Notification preferences
	EmailNotifications bool `gorm:"column:email_notifications;default:true" json:"email_notifications"`
	PushNotifications  bool `gorm:"column:push_notifications;default:false" json:"push_notifications"`

	// Appearance
	DarkMode bool   `gorm:"column:dark_mode;default:false" json:"dark_mode"`
	Language string `gorm:"column:language;default:en" json:"language"`
	Timezone string `gorm:"column:timezone;default:UTC" json:"timezone"`

	UpdateAt time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Skills        []Skill    `gorm:"foreignKey:ProfileID" json:"skills,omitempty"`
	DesiredSkills []SkillTag `gorm:"many2many:profile_desired_skills;foreignKey:ProfileID;joinForeignKey:profile_id;References:TagID;joinReferences:tag_id" json:"desired_skills,omitempty"`
}

// Skill proficiency levels
var SkillLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

func IsValidSkillLevel(level string) bool {
	for _, l := range SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Skill is a free-form skill entry on a profile. ProfileID is nullable:
// rows without an owner are global/admin-seeded skills.
type Skill struct {
	SkillID     uint    `gorm:"primaryKey;column:skill_id" json:"skill_id"`
	ProfileID   *uint   `gorm:"column:profile_id" json:"profile_id,omitempty"`
	Name        string  `gorm:"column:name" json:"name"`
	Level       string  `gorm:"column:level;default:Beginner" json:"level"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

// SkillTag is a normalized tag shared by job requirements and profile
// desired skills.
type SkillTag struct {
	TagID uint   `gorm:"primaryKey;column:tag_id" json:"tag_id"`
	Name  string `gorm:"column:name;unique" json:"name"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Profile) TableName() string {
	return "profiles"
}

func (Skill) TableName() string {
	return "skills"
}

func (SkillTag) TableName() string {
	return "skill_tags"
}

// CreateUserWithProfile creates the account and its profile in one
// transaction. A profile never exists without its account and an
// account is never committed without its profile.
func CreateUserWithProfile(db *gorm.DB, user *User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user.CreateAt = time.Now()
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := Profile{
			UserID:   user.UserID,
			UpdateAt: time.Now(),
		}
		if user.Handle != "" {
			name := user.Handle
			profile.FullName = &name
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
}

// ===== Request/Response DTOs =====

type SignupRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=job_seeker employer"`
}

type ProfileUpdateRequest struct {
	FullName           *string `json:"full_name"`
	PhoneNumber        *string `json:"phone_number"`
	Location           *string `json:"location"`
	Bio                *string `json:"bio"`
	CompanyName        *string `json:"company_name"`
	PreferredJobTitles *string `json:"preferred_job_titles"`
	JobCategories      *string `json:"job_categories"`
	EmploymentType     *string `json:"employment_type"`
	PreferredLocation  *string `json:"preferred_location"`
}

type SettingsUpdateRequest struct {
	ProfileVisibility  *string `json:"profile_visibility" binding:"omitempty,oneof=public employers private"`
	AllowContact       *bool   `json:"allow_contact"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	DarkMode           *bool   `json:"dark_mode"`
	Language           *string `json:"language"`
	Timezone           *string `json:"timezone"`
}

type SkillRequest struct {
	Name        string  `json:"name" binding:"required"`
	Level       string  `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Description *string `json:"description"`
}
