package handler

const (
	msgWelcome = `👋 Hello, %s!

I'm an AI assistant powered by Gemini. I can:
💬 chat and answer questions
🎤 turn text into voice
📝 summarize long texts
🌐 translate between languages
🖼 describe images you send me

Choose an option below or just send me a message.`

	msgHelp = `❓ How to use the bot

• Send any text and I'll reply.
• Send a photo (with an optional caption as a question) and I'll describe it.
• /ask <question> asks a direct question.
• /voice <text> turns text into a voice message.
• /translate [language] <text> translates text. Languages: ar, en, fr, es, de, it, ru, ja, ko, zh.
• /summarize <text> summarizes text.
• /stats shows your usage.`

	msgMainMenu = "🏠 Main menu\n\nChoose an action:"

	msgChatPrompt        = "💬 Send me any message and I'll reply."
	msgVoicePrompt       = "🎤 Send the text you want to hear as a voice message."
	msgSummaryPrompt     = "📝 Send the text you want summarized."
	msgTranslationPrompt = "🌐 Send the text you want translated.\n\nArabic text is translated to English, anything else to Arabic."
	msgImagePrompt       = "🖼 Send me a photo. Add a caption if you want to ask something specific about it."
	msgAskUsage          = "❓ Usage: /ask <your question>"
	msgCancelled         = "❌ Cancelled.\n\n" + msgMainMenu

	msgSummaryHeader     = "📝 Summary:\n\n"
	msgTranslationHeader = "🌐 Translation (%s):\n\n"
	msgImageHeader       = "🖼 Image description:\n\n"
	msgVoiceTitle        = "Voice message"

	msgAdminPanel        = "🛠 Admin panel\n\nChoose an action:"
	msgBroadcastPrompt   = "📢 Send the message you want to broadcast to all users."
	msgBroadcastEmpty    = "⚠️ The broadcast message is empty. Please send the text again."
	msgBroadcastStarting = "📤 Sending the broadcast to %d users..."

	msgAdminStats = `📊 Bot statistics

👥 Users: %d
💬 Messages: %d
📈 Average per user: %.2f`

	msgUserStats = `📊 Your statistics

💬 Messages: %d
📅 Member since: %s`

	msgNoStats = "📊 No statistics yet."

	msgStaleButton = "This button is no longer available."

	msgImageTooLarge  = "❌ The image is too large. Please send an image smaller than 4 MB."
	msgEmptyText      = "⚠️ Please send some text."
	msgEmptyResponse  = "😕 I couldn't come up with an answer. Please try rephrasing."
	msgVoiceFailed    = "❌ I couldn't create the voice message. Please try again."
	msgTimeout        = "⏳ The request took too long. Please try again."
	msgTemporaryError = "❌ A temporary error occurred. Please try again later."
)
