// file: internals/features/school/settings/maintenance/model/app_setting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const SettingKeyMaintenanceMode = "maintenance_mode"

// AppSettingModel is a platform-wide key/value row. Maintenance mode lives
// here as one row; the allowed-roles column lets operators widen the bypass
// list without a deploy.
type AppSettingModel struct {
	SettingID  uuid.UUID `gorm:"column:setting_id;type:uuid;default:gen_random_uuid();primaryKey" json:"setting_id"`
	SettingKey string    `gorm:"column:setting_key;type:varchar(64);not null;uniqueIndex" json:"setting_key"`

	SettingValue datatypes.JSON `gorm:"column:setting_value;type:jsonb;not null" json:"setting_value"`

	SettingAllowedRoles pq.StringArray `gorm:"column:setting_allowed_roles;type:text[]" json:"setting_allowed_roles"`

	SettingUpdatedBy *uuid.UUID `gorm:"column:setting_updated_by;type:uuid" json:"setting_updated_by,omitempty"`

	SettingCreatedAt time.Time `gorm:"column:setting_created_at;not null;autoCreateTime" json:"setting_created_at"`
	SettingUpdatedAt time.Time `gorm:"column:setting_updated_at;not null;autoUpdateTime" json:"setting_updated_at"`
}

func (AppSettingModel) TableName() string { return "app_settings" }
