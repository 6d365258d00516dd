package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-StudyWeek/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Study Week"
	AppID             = "com.github.steadyreaders.go-studyweek"
	KeyringService    = "com.github.steadyreaders.go-studyweek"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ClubName          = "Steady Readers Tech Study Club"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// FilePermExport represents -rw-r--r--; exported images are meant to be shared.
	FilePermExport fs.FileMode = 0644

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Persisted Schedule State (JSON slots in the preference store)
// -----------------------------------------------------------------------------

const (
	// Each key holds one JSON-serialized value managed by internal/store.
	KeyWeekStart   = "study-schedule-week-start"
	KeySchedule    = "study-schedule-data"
	KeySuggestions = "study-schedule-suggestions"
	KeySettings    = "study-schedule-settings"

	// DebounceWrite is the quiet period before a scheduled write is committed.
	DebounceWrite = 500 * time.Millisecond
)

// -----------------------------------------------------------------------------
// UI Preferences (plain Fyne preferences, not JSON slots)
// -----------------------------------------------------------------------------

const (
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefRosterMode = "roster_source_mode"
	PrefRosterPath = "roster_local_path"
	PrefRosterURL  = "roster_carddav_url"
	PrefRosterUser = "roster_username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Schedule Defaults & Limits
// -----------------------------------------------------------------------------

const (
	// DefaultSessionTime is the sentinel time for a freshly created session.
	DefaultSessionTime = "9:00 PM"

	// MaxSuggestions caps each autocomplete list (titles, presenters).
	// Oldest entries are evicted first once the cap is exceeded.
	MaxSuggestions = 50

	DaysPerWeek = 7

	DefaultLanguage = "en"
	DefaultPort     = "18090"
)

// -----------------------------------------------------------------------------
// Date & Time Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatISO is the canonical week-start layout (YYYY-MM-DD).
	DateFormatISO = "2006-01-02"

	// Layouts accepted when parsing the free-text session time field.
	TimeFormat12H      = "3:04 PM"
	TimeFormat12HTight = "3:04PM"
	TimeFormat24H      = "15:04"

	// MonthFormatShort renders "Mar" style month labels on day cards.
	MonthFormatShort = "Jan"
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	MainWindowWidth      = 780
	MainWindowHeight     = 640
	SettingsWindowWidth  = 560
	SettingsWindowHeight = 520

	// EmptyFieldPlaceholder is shown for blank session fields in preview mode.
	EmptyFieldPlaceholder = "—"

	PlaceholderURL  = "https://..."
	PlaceholderTime = "9:00 PM"

	LayoutColumnsDouble = 2
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyAppSubtitle    = "app_subtitle"
	TKeyLblWeekStart   = "lbl_week_start"
	TKeyBtnPreview     = "btn_preview"
	TKeyBtnEdit        = "btn_edit"
	TKeyBtnReset       = "btn_reset"
	TKeyBtnExport      = "btn_export"
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnBrowse      = "btn_browse"
	TKeyBtnImport      = "btn_import"
	TKeyLblTopic       = "lbl_topic"
	TKeyLblPresenter   = "lbl_presenter"
	TKeyLblBackup      = "lbl_backup"
	TKeyLblTime        = "lbl_time"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblVisibleDays = "lbl_visible_days"
	TKeyHelpVisible    = "help_visible_days"
	TKeyLblRoster      = "lbl_roster"
	TKeyHelpRoster     = "help_roster"
	TKeyLblSource      = "lbl_source"
	TKeyModeCardDAV    = "mode_carddav"
	TKeyModeLocal      = "mode_local"
	TKeyLblURL         = "lbl_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblDanger      = "lbl_danger_zone"
	TKeyConfirmTitle   = "confirm_title"
	TKeyConfirmReset   = "confirm_reset"
	TKeyNoDays         = "msg_no_days"
	TKeyNotifExported  = "notif_exported"
	TKeyNotifImported  = "notif_imported"
	TKeyNotifImportErr = "notif_import_err"
	TKeyLblFooter      = "lbl_footer"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrDate      = "err_date_format"

	// Day name message IDs are built as TKeyDayPrefix + lowercase day name.
	TKeyDayPrefix = "day_"
)

// -----------------------------------------------------------------------------
// Roster Source (vCard presenter import)
// -----------------------------------------------------------------------------

const (
	RosterModeWeb   = "web"
	RosterModeLocal = "local"

	VCardFN = "FN"
	VCardN  = "N"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Study Week//Schedule//EN"
	ICalCalName = "Study Sessions"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "studyweek"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// SessionDuration is assumed for events with a parseable start time.
	SessionDuration = 1 * time.Hour

	// FormatEventDescription expects presenter and backup presenter.
	FormatEventDescription = "Presenter: %s\nBackup: %s"
	FormatEventPresenter   = "Presenter: %s"

	// UID Generation
	UIDSalt         = "go-studyweek-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when the week
	// has no filled sessions, so feed clients never see an invalid body.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Image Export (headless Chromium capture)
// -----------------------------------------------------------------------------

const (
	ExportViewportWidth  = 1000
	ExportViewportHeight = 1400
	ExportQuality        = 95
	ExportSettleDelay    = 500 * time.Millisecond
	ExportTimeout        = 30 * time.Second

	// ExportReadySelector is the DOM marker the rendered page exposes once
	// it is safe to capture.
	ExportReadySelector = `[data-ready="true"]`

	// FormatExportFile expects the week-start date (YYYY-MM-DD).
	FormatExportFile = "schedule-%s.jpg"
	ExtJPG           = ".jpg"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB is plenty for an address book
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RoutePage           = "/"
	RouteCalendar       = "/calendar.ics"
	RouteHealth         = "/health"
	AddrSeparator       = ":"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	HealthBody = "OK"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrSerialize      = "failed to serialize value for storage"
	ErrDeserialize    = "stored value is corrupt, using default"
	ErrLocalPathEmpty = "configuration error: roster path is empty"
	ErrWebURLEmpty    = "configuration error: roster URL is empty"
	ErrFetcherMissing = "internal error: roster fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported roster source mode"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrRenderPage     = "failed to render schedule page"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrCaptureURL     = "capture: URL is required"
	ErrCapturePath    = "capture: output path is required"
	ErrCaptureRun     = "capture: chromium run failed"
	ErrCaptureWrite   = "capture: failed to write image"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocNotInit     = "localizer not initialized"
	ErrExportFailed   = "schedule export failed"
	ErrRosterImport   = "roster import failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgPageUpdated    = "Schedule page updated"
	MsgFeedUpdated    = "Calendar feed updated"
	MsgWriteScheduled = "Write scheduled"
	MsgWriteCommitted = "Write committed"
	MsgWriteFlushed   = "Pending writes flushed"
	MsgSessionUpdated = "Session updated"
	MsgWeekChanged    = "Week start changed"
	MsgDayToggled     = "Visible day toggled"
	MsgToggleRejected = "Visible day toggle rejected (last day)"
	MsgScheduleReset  = "Schedule reset"
	MsgBeforeExport   = "Suggestions merged before export"
	MsgExportStart    = "Export requested"
	MsgExportDone     = "Export finished"
	MsgImportStart    = "Roster import started"
	MsgImportDone     = "Roster import finished"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"

	MsgPortBusy       = "Port %s is busy or unavailable."
	TitleStartupError = "Startup Error"
	TitleExportError  = "Export Error"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Schedule initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyKey       = "key"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyDay       = "day"
	LogKeyField     = "field"
	LogKeyWeek      = "week_start"
	LogKeyCount     = "count"
	LogKeyAdded     = "added"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyPath      = "path"
	LogKeyValue     = "value"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompStore   = "store"
	CompPlanner = "planner"
	CompRoster  = "roster"
	CompFetcher = "fetcher"
	CompServer  = "server"
	CompRender  = "render"
	CompExport  = "export"
	CompMain    = "main"
	CompI18n    = "i18n"
)
