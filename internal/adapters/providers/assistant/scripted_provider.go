package assistant

import (
	"context"
	"strings"

	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
)

// ScriptedProvider answers with canned travel advice keyed off keywords in
// the message. It is the default provider and the fallback when no remote
// assistant backend is configured.
type ScriptedProvider struct{}

// NewScriptedProvider creates a new scripted assistant provider
func NewScriptedProvider() providers.AssistantProvider {
	return &ScriptedProvider{}
}

type scriptedRule struct {
	keywords []string
	reply    string
}

var scriptedRules = []scriptedRule{
	{
		keywords: []string{"budget", "cost", "price"},
		reply: "Based on your trip budget, I recommend allocating:\n\n" +
			"Accommodation: 30-40%\nFood & Dining: 20-25%\nActivities: 20-25%\n" +
			"Transportation: 15-20%\nEmergency Fund: 5-10%\n\n" +
			"Would you like specific recommendations for any category?",
	},
	{
		keywords: []string{"destination", "place", "where"},
		reply: "Considering your travel style, here are some amazing destinations:\n\n" +
			"Adventure seekers: New Zealand, Iceland, Costa Rica\n" +
			"Beach lovers: Maldives, Bali, Greek Islands\n" +
			"Culture enthusiasts: Japan, Italy, Morocco\n" +
			"City explorers: Tokyo, Barcelona, New York\n\n" +
			"What type of experience are you looking for?",
	},
	{
		keywords: []string{"activity", "things to do", "what to do"},
		reply: "Here are some popular activities you might enjoy:\n\n" +
			"Outdoor: Hiking, kayaking, zip-lining, cycling tours\n" +
			"Cultural: Museums, cooking classes, local markets, historical tours\n" +
			"Water sports: Snorkeling, surfing, diving, boat tours\n" +
			"Relaxation: Spa days, wine tasting, sunset cruises\n\n" +
			"Tell me more about your interests!",
	},
	{
		keywords: []string{"packing", "what to bring", "luggage"},
		reply: "Essential packing tips:\n\n" +
			"Documents: Passport, tickets, travel insurance\n" +
			"Clothing: Check weather, pack layers, comfortable shoes\n" +
			"Tech: Chargers, adapters, portable battery\n" +
			"Health: Medications, first-aid kit, sunscreen\n" +
			"Extras: Camera, reusable water bottle, day pack\n\n" +
			"Need a detailed packing list?",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply: "Hello! I'm Vega, your personal travel assistant. " +
			"I'm excited to help you create unforgettable travel experiences. " +
			"What would you like to know about your trip?",
	},
	{
		keywords: []string{"thank", "thanks"},
		reply: "You're very welcome! I'm always here to help make your travels amazing. " +
			"Feel free to ask me anything else!",
	},
}

const defaultReply = "That's a great question! As your travel assistant, I can help you with:\n\n" +
	"- Destination recommendations\n- Budget planning and tips\n- Activity suggestions\n" +
	"- Packing advice\n- Local customs and culture\n- Travel safety tips\n\n" +
	"What specific aspect of your trip would you like to explore?"

// Chat produces a canned reply plus the soft rules in force for the trip's
// country and the caller's preferences.
func (p *ScriptedProvider) Chat(_ context.Context, req *entities.AssistantContext) (*entities.AssistantReply, error) {
	message := strings.ToLower(req.Message)

	reply := defaultReply
	for _, rule := range scriptedRules {
		if matchesAny(message, rule.keywords) {
			reply = rule.reply
			break
		}
	}

	return &entities.AssistantReply{
		Reply: reply,
		Rules: SoftRules(req.Country, req.Preferences),
	}, nil
}

func matchesAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

// SoftRules returns the advisory constraints for a country and preference
// set. Country packs exist for a handful of destinations; unknown countries
// get no country rules.
func SoftRules(country string, preferences []string) []string {
	rules := []string{}

	switch strings.ToLower(country) {
	case "japan":
		rules = append(rules, "Prefer public transport", "Avoid late-night activities")
	case "france":
		rules = append(rules, "Prefer walkable activities", "Include cultural experiences")
	case "india":
		rules = append(rules, "Avoid long travel during peak heat hours", "Prefer local experiences")
	}

	for _, preference := range preferences {
		switch strings.ToLower(preference) {
		case "relaxed":
			rules = append(rules, "Avoid tightly packed schedules")
		case "food":
			rules = append(rules, "Include food-related experiences")
		}
	}

	return rules
}
