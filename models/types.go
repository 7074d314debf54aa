package models

// Active axis constants
const (
	AxisDaily  = "daily"
	AxisWeekly = "weekly"
)

// Difficulty constants as the question catalog reports them
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// GuildID identifies one chat community the bot serves.
type GuildID string

// UserID identifies a community member. Bot accounts are filtered out at
// membership-sync time and never appear as keys.
type UserID string

// ChannelRef points at a channel or thread on the chat platform.
type ChannelRef string

// MessageRef points at a single message on the chat platform.
type MessageRef string

// UserStatus tracks one member's progress within a guild.
type UserStatus struct {
	VotedFor          *UserID `json:"voted_for"`
	Submitted         *string `json:"submitted"`
	WeeklySubmissions int     `json:"weekly_submissions"`
	MonthlyRecord     uint32  `json:"monthly_record"`
	DaysMissed        uint32  `json:"days_missed"`
	Score             int     `json:"score"`
}

// GuildState is the per-guild challenge state. A GuildState is created the
// first time the bot sees a guild and is never deleted.
type GuildState struct {
	Users        map[UserID]*UserStatus `json:"users"`
	ChannelID    *ChannelRef            `json:"channel_id"`
	ThreadID     *ChannelRef            `json:"thread_id"`
	WeeklyID     *ChannelRef            `json:"weekly_id"`
	PollID       *MessageRef            `json:"poll_id"`
	ActiveWeekly bool                   `json:"active_weekly"`
	ActiveDaily  bool                   `json:"active_daily"`
}

// NewGuildState returns a fresh state with both axes active and no channels.
func NewGuildState() *GuildState {
	return &GuildState{
		Users:        make(map[UserID]*UserStatus),
		ActiveWeekly: true,
		ActiveDaily:  true,
	}
}

// User returns the status entry for id, creating it lazily on first sight.
func (g *GuildState) User(id UserID) *UserStatus {
	status, ok := g.Users[id]
	if !ok {
		status = &UserStatus{}
		g.Users[id] = status
	}
	return status
}

// Database is the whole persisted state, keyed by guild id.
type Database map[GuildID]*GuildState

// Question is one catalog entry as returned by the question-catalog client.
type Question struct {
	FrontendID     string
	Title          string
	TitleSlug      string
	Difficulty     string
	AcceptanceRate float64
	PaidOnly       bool
	URL            string
}

// Member is one non-bot guild member as reported by the chat platform.
type Member struct {
	ID   UserID
	Name string
}
