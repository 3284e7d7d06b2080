package prompt

import (
	"strings"
)

// StudentBuilder renders the fixed instruction template used for knowledge-base answers
type StudentBuilder struct {
	context  string
	question string
}

// NewStudentBuilder creates a builder for one retrieval context and question
func NewStudentBuilder(context, question string) *StudentBuilder {
	return &StudentBuilder{
		context:  context,
		question: question,
	}
}

// Build renders the prompt. An empty context still renders; the instructions
// tell the model to say the information is not available.
func (b *StudentBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeContext(&prompt)
	b.writeQuestion(&prompt)
	b.writeInstructions(&prompt)

	prompt.WriteString("Your Answer:")
	return prompt.String()
}

func (b *StudentBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("You are a helpful university assistant specifically designed to help students with their academic queries. ")
	prompt.WriteString("Your goal is to provide clear, accurate, and student-friendly responses.\n\n")
}

func (b *StudentBuilder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("Context from university documents:\n")
	prompt.WriteString(b.context)
	prompt.WriteString("\n\n")
}

func (b *StudentBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("Student Question: ")
	prompt.WriteString(b.question)
	prompt.WriteString("\n\n")
}

func (b *StudentBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("Instructions for your response:\n")
	prompt.WriteString("1. Answer the question directly and accurately using only the provided context\n")
	prompt.WriteString("2. If the context contains the information, provide specific details including:\n")
	prompt.WriteString("   Exact dates, deadlines, or timeframes\n")
	prompt.WriteString("   Specific requirements, procedures, or steps\n")
	prompt.WriteString("   Contact information or relevant departments if mentioned\n")
	prompt.WriteString("   Any important conditions or prerequisites\n")
	prompt.WriteString("3. If the context doesn't fully answer the question, clearly state: \"Based on the available information, [provide what you know], but I recommend contacting [relevant department/office] for complete details.\"\n")
	prompt.WriteString("4. If the context is empty or unrelated, say that this information is not available in the university documents\n")
	prompt.WriteString("5. Use clear, concise, simple language that students can easily understand\n")
	prompt.WriteString("6. Be encouraging and supportive in tone\n")
	prompt.WriteString("7. Don't generate thinking text, just provide the answer\n")
	prompt.WriteString("8. Use line breaks to separate multiple items for better readability\n")
	prompt.WriteString("9. Don't use '*' or '-' or '##' in the response\n")
	prompt.WriteString("10. Don't respond with anything negative or offensive\n")
	prompt.WriteString("11. Don't respond with anything that is not related to the question\n\n")
}
