package ui_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/steadyreaders/go-studyweek/internal/config"
	"github.com/steadyreaders/go-studyweek/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestI18nIntegrity ensures that every translation key referenced from
// config.go actually exists in each locale JSON file, so no language falls
// back to raw key names at runtime.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinSettings,
		config.TKeyAppSubtitle,
		config.TKeyLblWeekStart,
		config.TKeyBtnPreview,
		config.TKeyBtnEdit,
		config.TKeyBtnReset,
		config.TKeyBtnExport,
		config.TKeyBtnSettings,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyBtnBrowse,
		config.TKeyBtnImport,
		config.TKeyLblTopic,
		config.TKeyLblPresenter,
		config.TKeyLblBackup,
		config.TKeyLblTime,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyLblGeneral,
		config.TKeyLblVisibleDays,
		config.TKeyHelpVisible,
		config.TKeyLblRoster,
		config.TKeyHelpRoster,
		config.TKeyLblSource,
		config.TKeyModeCardDAV,
		config.TKeyModeLocal,
		config.TKeyLblURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyConfirmTitle,
		config.TKeyConfirmReset,
		config.TKeyNoDays,
		config.TKeyNotifExported,
		config.TKeyNotifImported,
		config.TKeyNotifImportErr,
		config.TKeyLblFooter,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrDate,
	}

	// Day labels are derived keys.
	for _, day := range engine.DayNames {
		keysToCheck = append(keysToCheck, config.TKeyDayPrefix+strings.ToLower(string(day)))
	}

	locales := []string{"locales/active.en.json", "locales/active.fr.json"}

	for _, path := range locales {
		t.Run(path, func(t *testing.T) {
			content, err := os.ReadFile(path)
			require.NoError(t, err, "Must load %s", path)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for _, key := range keysToCheck {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, path)
			}
		})
	}
}
