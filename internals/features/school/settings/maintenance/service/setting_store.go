// file: internals/features/school/settings/maintenance/service/setting_store.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	smodel "edufam_backend/internals/features/school/settings/maintenance/model"
)

// maintenanceValue is the JSON shape stored in app_settings.setting_value.
type maintenanceValue struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}

// SettingStore is the gorm-backed SettingReader plus the admin write path.
type SettingStore struct {
	DB *gorm.DB
}

func NewSettingStore(db *gorm.DB) *SettingStore {
	return &SettingStore{DB: db}
}

// ReadMaintenanceState loads the maintenance row. A missing row means
// maintenance was never configured, which reads as off.
func (s *SettingStore) ReadMaintenanceState(ctx context.Context) (MaintenanceState, error) {
	var row smodel.AppSettingModel
	err := s.DB.WithContext(ctx).
		Where("setting_key = ?", smodel.SettingKeyMaintenanceMode).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MaintenanceState{Enabled: false}, nil
		}
		return MaintenanceState{}, err
	}

	var v maintenanceValue
	if len(row.SettingValue) > 0 {
		if err := sonic.Unmarshal(row.SettingValue, &v); err != nil {
			return MaintenanceState{}, err
		}
	}
	return MaintenanceState{
		Enabled:      v.Enabled,
		Message:      v.Message,
		AllowedRoles: []string(row.SettingAllowedRoles),
	}, nil
}

// WriteMaintenanceState upserts the maintenance row keyed by setting_key.
func (s *SettingStore) WriteMaintenanceState(
	ctx context.Context,
	st MaintenanceState,
	updatedBy uuid.UUID,
) error {
	raw, err := sonic.Marshal(maintenanceValue{Enabled: st.Enabled, Message: st.Message})
	if err != nil {
		return err
	}

	row := smodel.AppSettingModel{
		SettingKey:          smodel.SettingKeyMaintenanceMode,
		SettingValue:        datatypes.JSON(raw),
		SettingAllowedRoles: pq.StringArray(st.AllowedRoles),
		SettingUpdatedBy:    &updatedBy,
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"setting_value":         datatypes.JSON(raw),
			"setting_allowed_roles": pq.StringArray(st.AllowedRoles),
			"setting_updated_by":    updatedBy,
			"setting_updated_at":    time.Now().UTC(),
		}),
	}).Create(&row).Error
}
