package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estate-assistant/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Intent
	}{
		{name: "budget keyword", text: "what budget do I need", expected: models.IntentBudgetInquiry},
		{name: "cost keyword", text: "how much does it cost", expected: models.IntentBudgetInquiry},
		{name: "price keyword", text: "price per square foot", expected: models.IntentBudgetInquiry},
		{name: "design keyword", text: "I want a modern design", expected: models.IntentDesignServices},
		{name: "architect keyword", text: "need an architect", expected: models.IntentDesignServices},
		{name: "plan keyword", text: "floor plan options", expected: models.IntentDesignServices},
		{name: "construction keyword", text: "construction quality matters", expected: models.IntentConstructionServices},
		{name: "build keyword", text: "we want to build a villa", expected: models.IntentConstructionServices},
		{name: "contractor keyword", text: "find me a contractor", expected: models.IntentConstructionServices},
		{name: "consultation keyword", text: "book a consultation", expected: models.IntentConsultationRequest},
		{name: "advice keyword", text: "need some advice", expected: models.IntentConsultationRequest},
		{name: "help keyword", text: "can you help me", expected: models.IntentConsultationRequest},
		{name: "property keyword", text: "show property listings", expected: models.IntentPropertyInquiry},
		{name: "house keyword", text: "a house with a garden", expected: models.IntentPropertyInquiry},
		{name: "flat keyword", text: "2BHK flat please", expected: models.IntentPropertyInquiry},
		{name: "no keyword", text: "hello there", expected: models.IntentGeneral},
		{name: "empty text", text: "", expected: models.IntentGeneral},
		{name: "case insensitive", text: "WHAT IS THE PRICE", expected: models.IntentBudgetInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Intent
	}{
		// budget rule precedes the construction and consultation rules
		{name: "budget beats construction", text: "I need help with construction budget", expected: models.IntentBudgetInquiry},
		{name: "budget beats help", text: "help me budget for construction", expected: models.IntentBudgetInquiry},
		{name: "design beats build", text: "design and build package", expected: models.IntentDesignServices},
		{name: "construction beats property", text: "construction of my house", expected: models.IntentConstructionServices},
		{name: "consultation beats flat", text: "advice on buying a flat", expected: models.IntentConsultationRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	const text = "help me budget for construction"

	assert.Equal(t, Classify(text), Classify(text))
}
