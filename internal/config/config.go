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
var UserAgent = "Go-Age/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Age"
	AppID             = "com.github.tartampluch.go-age"
	CLIName           = "go-age"
	KeyringService    = "com.github.tartampluch.go-age"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Age Policy
// -----------------------------------------------------------------------------

const (
	// MinimumValidYear is the oldest birth year accepted by the input gate.
	MinimumValidYear = 1900

	// DebounceInterval delays computation while the user is still typing.
	DebounceInterval = 500 * time.Millisecond

	// TickInterval drives the live elapsed-seconds refresh.
	TickInterval = 1000 * time.Millisecond
)

// Zodiac sign names, in table order.
const (
	ZodiacCapricorn   = "Capricorn"
	ZodiacAquarius    = "Aquarius"
	ZodiacPisces      = "Pisces"
	ZodiacAries       = "Aries"
	ZodiacTaurus      = "Taurus"
	ZodiacGemini      = "Gemini"
	ZodiacCancer      = "Cancer"
	ZodiacLeo         = "Leo"
	ZodiacVirgo       = "Virgo"
	ZodiacLibra       = "Libra"
	ZodiacScorpio     = "Scorpio"
	ZodiacSagittarius = "Sagittarius"
	ZodiacUnknown     = "Unknown"
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
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagBirth        = "birth"
	FlagFormat       = "format"
	FlagLang         = "lang"
	FlagLive         = "live"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescBirth    = "Birth date (YYYY-MM-DD, YYYYMMDD or RFC 3339)"
	FlagDescFormat   = "Output format: text, json, yaml or ics"
	FlagDescLang     = "Output language (en, fr)"
	FlagDescLive     = "Keep refreshing the elapsed seconds until interrupted (text only)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	CmdRootShort   = "Age calculator with live elapsed time"
	CmdRootLong    = "Go Age computes an age in years, months and days plus flat totals, and keeps the elapsed seconds ticking."
	CmdReportUse   = "report"
	CmdReportShort = "Print an age report without starting the desktop window"
)

// Output formats of the report command and the presenter encoder.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"

	JSONIndent = "  "
	YAMLIndent = 2

	// FormatTextLine renders one "label: value" line of the terminal report.
	FormatTextLine = "%s: %s\n"

	// FormatTextOpenLine renders the live seconds line without ending it.
	FormatTextOpenLine = "%s: %s"

	// FormatTextPatch rewrites the live seconds line in place.
	FormatTextPatch = "\r%s: %s"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 520
	MainWindowHeight    = 560
	SettingsWindowWidth = 600

	// DateEntryPlaceholder is shown in the empty birth date field.
	DateEntryPlaceholder = "YYYY-MM-DD"
	DateEntrySeparator   = '-'

	// Preference Keys
	PrefLanguage    = "language"
	PrefSourceMode  = "source_mode"
	PrefLocalPath   = "local_path"
	PrefCardDAVURL  = "carddav_url"
	PrefUsername    = "username"
	PrefServerPort  = "server_port"
	PrefFeedEnabled = "feed_enabled"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Contacts Window Constants
// -----------------------------------------------------------------------------

const (
	ContactsWinWidth  = 600
	ContactsWinHeight = 400

	// Table Column IDs
	ColIDName  = 0
	ColIDBirth = 1
	ColIDNext  = 2
	ColIDTurns = 3
	ColCount   = 4

	// Table Layout
	ColWidthName  = 230
	ColWidthBirth = 120
	ColWidthNext  = 120
	ColWidthTurns = 80

	TablePlaceholder  = "Cell Content"
	HeaderPlaceholder = "Header"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	// Windows & Menus
	TKeyWinTitle     = "win_title"
	TKeyWinSettings  = "win_settings_title"
	TKeyWinContacts  = "win_contacts_title"
	TKeyMenuOpen     = "menu_open"
	TKeyMenuContacts = "menu_contacts"
	TKeyMenuSettings = "menu_settings"
	TKeyTrayStatus   = "tray_status" // Requires Count
	TKeyTrayIdle     = "tray_idle"

	// Main Window
	TKeyLblBirthDate  = "lbl_birth_date"
	TKeyHelpBirthDate = "help_birth_date"
	TKeyBtnCalculate  = "btn_calculate"
	TKeyBtnContacts   = "btn_contacts"

	// Report
	TKeySummary       = "result_summary" // Requires Years, Months, Days
	TKeyStatTotalDays = "stat_total_days"
	TKeyStatWeeks     = "stat_weeks"
	TKeyStatHours     = "stat_hours"
	TKeyStatMinutes   = "stat_minutes"
	TKeyStatSeconds   = "stat_seconds"
	TKeyStatLeapYears = "stat_leap_years"
	TKeyLblBornOn     = "lbl_born_on"
	TKeyLblZodiac     = "lbl_zodiac"
	TKeyLblNextBday   = "lbl_next_birthday"
	TKeyDaysAway      = "next_birthday_days" // Requires Count

	// Errors (user-facing)
	TKeyErrMissingInput = "err_missing_input"
	TKeyErrFutureDate   = "err_future_date"
	TKeyErrDateTooOld   = "err_date_too_old"
	TKeyErrInvalidDate  = "err_invalid_date"
	TKeyErrCalcFailure  = "err_calculation_failure"

	// Contacts
	TKeyColName        = "col_name"
	TKeyColBirth       = "col_birth"
	TKeyColNext        = "col_next"
	TKeyColTurns       = "col_turns"
	TKeyContactsEmpty  = "contacts_empty"
	TKeyNotifImportOK  = "notif_import_success" // Requires Count
	TKeyNotifImportErr = "notif_import_error"

	// Settings
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblSource     = "lbl_source"
	TKeyModeCardDAV   = "mode_carddav"
	TKeyModeLocal     = "mode_local"
	TKeyLblURL        = "lbl_url"
	TKeyHelpURL       = "help_carddav_url"
	TKeyLblUser       = "lbl_user"
	TKeyLblPass       = "lbl_pass"
	TKeyBtnBrowse     = "btn_browse"
	TKeyLblFeed       = "lbl_feed"
	TKeyLblFeedEnable = "lbl_feed_enable"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyErrPortReq    = "err_port_required"
	TKeyErrPortNum    = "err_port_number"
	TKeyErrPortRange  = "err_port_range"

	// Calendar feed
	TKeyEvtSummaryAge   = "event_summary_age" // Requires Age
	TKeyEvtSummaryBirth = "event_summary_birth"

	// FormatWeekdayKey expects a time.Weekday (0 = Sunday).
	FormatWeekdayKey = "weekday_%d"
	// FormatZodiacKey expects a lower-case sign name.
	FormatZodiacKey = "zodiac_%s"
)

// Template data fields used by the localized messages.
const (
	TmplCount  = "Count"
	TmplYears  = "Years"
	TmplMonths = "Months"
	TmplDays   = "Days"
	TmplAge    = "Age"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	UIDSalt         = "go-age-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Age//Feed//EN"
	ICalCalName = "Birthday"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goage"

	// iCal/vCard Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Accepted birth date layouts
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// vCard truncated layouts (no year)
	DateFormatNoYearD = "--01-02"
	DateFormatNoYearB = "--0102"

	// FormatISODate renders a CalendarDate (year, month, day).
	FormatISODate = "%04d-%02d-%02d"
	// FormatDateError wraps ErrInvalidDate with the rejected components.
	FormatDateError = "%w: %04d-%02d-%02d"
	// FormatYearTooOld wraps ErrDateTooOld with the year and the minimum.
	FormatYearTooOld = "%w: %d < %d"
	// FormatBadStatus expects the error label and an HTTP status code.
	FormatBadStatus = "%s: %d"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
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
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	MaxRedirects        = 5
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
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
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FeedFileName is the name calendar clients see for the served feed.
	FeedFileName = "birthday.ics"

	// AcceptVCard prefers vCard exports but tolerates servers that label them loosely.
	AcceptVCard = "text/vcard, text/x-vcard;q=0.9, text/directory;q=0.8, */*;q=0.1"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	// Age domain
	ErrMissingInput = "no birth date supplied"
	ErrInvalidDate  = "invalid birth date"
	ErrFutureDate   = "birth date is in the future"
	ErrDateTooOld   = "birth year is below the supported minimum"
	ErrCalcFailure  = "age calculation failed"
	ErrYearUnknown  = "birthday has no year"

	// Contacts & network
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrBuildRequest   = "failed to build request"
	ErrNetwork        = "network request failed"
	ErrBadStatus      = "unexpected HTTP status"
	ErrSourceAuth     = "address book rejected the credentials"
	ErrSourceTooLarge = "address book exceeds the size limit"
	ErrSourceNotVCard = "address book response is not a vCard stream"
	ErrRedirects      = "too many redirects"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"

	// Presentation
	ErrUnsupportedFormat = "unsupported output format"
	ErrEncodeReport      = "failed to encode report"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrUnknownLanguage   = "unsupported language"

	// Server & process
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrKeyringSave      = "failed to save credentials to keyring"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar not ready, enter a birth date first."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday (%d)"
	FallbackSummaryBirth = "Birth"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."
	PlaceholderURL    = "https://..."

	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgInputRejected   = "Birth date rejected"
	MsgReportComputed  = "Age report computed"
	MsgImportStarted   = "Contact import started"
	MsgImportFinished  = "Contact import finished"
	MsgImportSuccess   = "Contacts parsed"
	MsgImportFailed    = "Contact import failed"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping unusable birthday"
	MsgFetchStart      = "Fetching address book"
	MsgFetchRejected   = "Address book response rejected"
	MsgFetchOK         = "Address book downloaded"
	MsgFetchNotVCard   = "Address book server answered with a non-vCard document"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgFeedRestart     = "Restarting calendar feed"
	MsgFeedDisabled    = "Calendar feed disabled"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLanguageChanged = "Language changed"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgTickerStart     = "Elapsed ticker started"
	MsgTickerStop      = "Elapsed ticker stopped"
	MsgDebounceFired   = "Debounced input fired"
	MsgOpenContacts    = "Opening contacts window"
	MsgOpenSettings    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSavingPrefs     = "Saving preferences"
	MsgContactPicked   = "Contact selected"
	MsgSorted          = "Contacts sorted"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeySizeBytes = "size_bytes"
	LogKeyMime      = "content_type"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyPanic     = "panic"
	LogKeyYears     = "years"
	LogKeyDaysUntil = "days_until_birthday"
	LogKeyInterval  = "interval"
	LogKeyFormat    = "format"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
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
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompGate     = "gate"
	CompContacts = "contacts"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompLive     = "live"
	CompMain     = "main"
	CompCLI      = "cli"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsStats  = 3
)
