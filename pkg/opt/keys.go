package opt

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Generation
const (
	SystemPromptKey = "system"
	CacheControlKey = "cache_control"
	TemperatureKey  = "temperature"
	MaxTokensKey    = "max_tokens"
	JSONSchemaKey   = "json_schema"
	ToolChoiceKey   = "tool_choice"
	ToolkitKey      = "toolkit"
	ToolKey         = "tool"
)

// Pagination
const (
	LimitKey   = "limit"
	AfterIdKey = "after_id"
)
