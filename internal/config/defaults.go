package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultTelegramPollTimeout = time.Minute

	DefaultDiceBearBaseURL = "https://api.dicebear.com/8.x"

	DefaultBotMaxConcurrentUpdates = 50 // Maximum concurrent update handlers
	DefaultBotUpdateBuffer         = 16
	DefaultBotErrorBuffer          = 16

	ProbeTaskName          = "dicebear_probe"
	DefaultProbeSchedule   = "0 */10 * * * *" // every 10 minutes, seconds field first
	DefaultProbeTimeout    = 30 * time.Second
	DefaultProbeTaskEnable = true
)

// DefaultMessages holds the Uzbek reply texts.
var DefaultMessages = MessagesConfig{
	Help: "🧑‍🎨 Avatar yaratish uchun quyidagi buyruqlardan birini kiriting:\n\n" +
		"🟢 /fun-emoji <ism>\n" +
		"🟢 /avataaars <ism>\n" +
		"🟢 /bottts <ism>\n" +
		"🟢 /pixel-art <ism>\n\n" +
		"Masalan: /bottts John Doe",
	UseCommand: "Iltimos, avatar olish uchun buyruqdan foydalaning.",
	UnknownCommand: "Noma’lum buyruq. Quyidagilardan birini ishlating:\n" +
		"/fun-emoji, /bottts, /avataaars, /pixel-art",
	SeedRequiredFmt: "Iltimos, buyruqdan keyin matn (Ism) kiriting. Masalan: %s Ali",
	CaptionFmt:      "👤 Avatar: %s",
	FetchFailed:     "Avatar yaratishda xatolik yuz berdi. Keyinroq urinib ko‘ring.",
	SendFailed:      "Rasmni yuborishda xatolik yuz berdi.",
}
