package service

const systemPrompt = `You are a friendly, knowledgeable assistant inside a Telegram chat.
Answer accurately and concisely. Reply in the same language as the user's message.
Use short paragraphs and simple lists. Never invent facts; say when you are unsure.`

const imageSystemPrompt = `You are an assistant that analyses images.
Describe what you see clearly and accurately. Mention objects, people, text and setting when relevant.
Reply in the same language as the user's request.`

// DefaultImagePrompt is used when a photo arrives without a caption
const DefaultImagePrompt = "Describe this image in detail."

const chatPrompt = `The user's name is %s.
Reply to their message naturally and helpfully.

Message:
%s`

const summarizePrompt = `Summarize the following text. Keep the key points and write the summary in the same language as the text.

Text:
%s`

const translatePrompt = `Translate the following text into %s.
Return only the translation, without notes or explanations.

Text:
%s`

const answerPrompt = `Answer the following question clearly and accurately.

Question:
%s`

const contextBlock = `Context:
%s

%s`
