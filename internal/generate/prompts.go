package generate

const pollPrompt = `Based on these chat messages, suggest a relevant poll question and options.
Format response as JSON: {
    "question": "poll question",
    "options": ["option1", "option2", "option3", "option4"],
    "relevance_score": 0-100
}`

const sentimentPrompt = `Analyze the sentiment of these chat messages and provide:
1. Overall sentiment score (0-100)
2. Percentage of positive and negative messages
3. Key topics and their sentiment

Format as JSON: {
    "score": number,
    "positive": number,
    "negative": number,
    "topics": [{"topic": string, "sentiment": "positive|negative"}]
}`

const highlightsPrompt = `Create highlight summaries from these chat messages.
Focus on:
1. Key moments or events
2. Popular reactions
3. Important announcements
4. Community interactions

Format as JSON array: [{
    "title": string,
    "summary": string,
    "category": string,
    "timestamp": string
}]`

const answerPromptTemplate = `As a stream moderator, provide a concise, helpful answer to this question:
%s

Keep the response informative but brief.`
