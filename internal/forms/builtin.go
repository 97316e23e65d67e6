package forms

import "github.com/linskybing/genie-forms/internal/domain/form"

// Builtin returns fresh copies of the bundled form definitions in
// registration order.
func Builtin() []form.Definition {
	return []form.Definition{
		contactForm(),
		feedbackForm(),
		surveyForm(),
		newsletterForm(),
		marketingRequestForm(),
	}
}

func contactForm() form.Definition {
	return form.Definition{
		ID:          "contact",
		Title:       "Contact Form",
		Description: "Get in touch with us",
		Fields: []form.Field{
			{Name: "name", Label: "Full Name", Type: form.FieldText, Placeholder: "Enter your full name", Required: true,
				Rules: "min=2", Message: "Name must be at least 2 characters"},
			{Name: "email", Label: "Email Address", Type: form.FieldEmail, Placeholder: "Enter your email", Required: true,
				Message: "Invalid email address"},
			{Name: "message", Label: "Message", Type: form.FieldTextarea, Placeholder: "Enter your message", Required: true,
				Rules: "min=10", Message: "Message must be at least 10 characters"},
		},
	}
}

func feedbackForm() form.Definition {
	return form.Definition{
		ID:          "feedback",
		Title:       "Feedback Form",
		Description: "Share your feedback with us",
		Fields: []form.Field{
			{Name: "rating", Label: "Rating", Type: form.FieldSelect, Required: true,
				Options: []string{"1 - Poor", "2 - Fair", "3 - Good", "4 - Great", "5 - Excellent"},
				Message: "Please select a rating"},
			{Name: "category", Label: "Category", Type: form.FieldSelect, Required: true,
				Options: []string{"Product", "Service", "Support", "Website", "Other"},
				Message: "Please select a category"},
			{Name: "feedback", Label: "Your Feedback", Type: form.FieldTextarea, Placeholder: "Tell us what you think...", Required: true,
				Rules: "min=5", Message: "Feedback must be at least 5 characters"},
		},
	}
}

func surveyForm() form.Definition {
	return form.Definition{
		ID:          "survey",
		Title:       "Customer Survey",
		Description: "Help us understand your needs",
		Fields: []form.Field{
			{Name: "age", Label: "Age", Type: form.FieldNumber, Placeholder: "Enter your age", Required: true,
				Message: "Please enter your age"},
			{Name: "occupation", Label: "Occupation", Type: form.FieldText, Placeholder: "Enter your occupation", Required: true,
				Rules: "min=2", Message: "Please enter your occupation"},
			{Name: "experience", Label: "Experience Level", Type: form.FieldSelect, Required: true,
				Options: []string{"Beginner", "Intermediate", "Advanced", "Expert"},
				Message: "Please select your experience level"},
			{Name: "suggestions", Label: "Additional Suggestions", Type: form.FieldTextarea, Placeholder: "Any suggestions for improvement?"},
		},
	}
}

func newsletterForm() form.Definition {
	return form.Definition{
		ID:          "newsletter",
		Title:       "Newsletter Signup",
		Description: "Subscribe to our newsletter for updates",
		Fields: []form.Field{
			{Name: "firstName", Label: "First Name", Type: form.FieldText, Placeholder: "Enter your first name", Required: true,
				Message: "First name is required"},
			{Name: "email", Label: "Email Address", Type: form.FieldEmail, Placeholder: "Enter your email address", Required: true,
				Message: "Please enter a valid email address"},
			{Name: "interests", Label: "Areas of Interest", Type: form.FieldSelect, Required: true,
				Options: []string{"Technology", "Business", "Design", "Marketing", "General News"},
				Message: "Please select your interests"},
			{Name: "frequency", Label: "Email Frequency", Type: form.FieldSelect, Required: true,
				Options: []string{"Daily", "Weekly", "Bi-weekly", "Monthly"},
				Message: "Please select your preferred frequency"},
		},
	}
}

func marketingRequestForm() form.Definition {
	return form.Definition{
		ID:          MarketingRequestID,
		Title:       "Marketing Request",
		Description: "Submit a request for marketing activities and campaigns",
		Fields: []form.Field{
			{
				Name:        "background",
				Label:       "Background Information / Context / What would you like done?",
				Type:        form.FieldTextarea,
				Placeholder: "Provide background information and context for this marketing request...",
				Required:    true,
				Rules:       "min=10",
				Message:     "Please provide background context (minimum 10 characters)",
				Help: []string{
					"Include relevant context like timeline, budget constraints, or previous efforts",
					"Explain the business problem you're trying to solve",
					"Mention any key stakeholders or departments involved",
				},
				Examples: []string{
					"We need to increase brand awareness for our new product launch",
					"Generate more qualified leads for our B2B software",
					"Drive more traffic to our e-commerce site during holiday season",
					"Promote our upcoming webinar to IT professionals",
				},
			},
			{
				Name:        "objectives",
				Label:       "What are the objectives that we need to meet?",
				Type:        form.FieldTextarea,
				Placeholder: "Describe the specific objectives and goals. Please be as specific as possible. Consider using SMART goals...",
				Required:    true,
				Rules:       "min=10",
				Message:     "Please describe the objectives (minimum 10 characters)",
				Help: []string{
					"Use SMART goals: Specific, Measurable, Achievable, Relevant, Time-bound",
					"Be as specific as possible with numbers and timelines",
					"Align objectives with overall business goals",
				},
				Examples: []string{
					"Increase website traffic by 25% within 3 months",
					"Generate 100 qualified leads per month",
					"Achieve 10,000 social media followers by Q4",
					"Boost email open rates to 25%",
				},
			},
			{
				Name:           "measurement",
				Label:          "How will we measure these objectives?",
				Type:           form.FieldMultiSelect,
				Options:        append([]string(nil), MeasurementOptions...),
				Required:       true,
				AllowCustom:    true,
				IncludeNotSure: true,
				AIAssistance:   true,
				Message:        "Please select at least one measurement method",
				Help: []string{
					"Select multiple metrics that align with your objectives",
					"Add custom metrics if needed",
					"Choose 'I'm not sure' if you need guidance on measurement",
				},
				Examples: []string{
					"Awareness goals: Impressions, reach, brand mentions",
					"Engagement goals: CTR, time on page, social shares",
					"Lead generation: Conversion rate, cost per lead",
					"Sales goals: Revenue, ROI, customer acquisition cost",
				},
			},
			{
				Name:        "ccEmails",
				Label:       "CC for Review/Comments",
				Type:        form.FieldEmails,
				Placeholder: "name@example.com",
				Message:     "Please enter valid email addresses",
				Help: []string{
					"Add email addresses of people you want to CC for review and comments",
					"These people will receive notifications about this marketing request",
					"Optional - only add if you need specific stakeholders to be involved",
				},
				Examples: []string{
					"stakeholder@company.com",
					"manager@company.com",
					"team-lead@company.com",
				},
			},
			{
				Name:        "targeting",
				Label:       "Who are we targeting with this marketing activity?",
				Type:        form.FieldTextarea,
				Placeholder: "Describe your target audience, demographics, personas, etc...",
				Required:    true,
				Rules:       "min=10",
				Message:     "Please describe your target audience (minimum 10 characters)",
				Help: []string{
					"Consider demographics: age, gender, location, income",
					"Include psychographics: interests, values, lifestyle",
					"Mention behavioral patterns: buying habits, brand loyalty",
					"For B2B: job titles, company size, industry",
				},
				Examples: []string{
					"Small business owners in tech, 25-45 years old",
					"Marketing managers at companies with 50-500 employees",
					"Parents with young children interested in healthy living",
					"IT professionals at enterprise companies",
				},
			},
			{
				Name:        "examples",
				Label:       "Have you seen this marketing activity being used before? (optional)",
				Type:        form.FieldTextarea,
				Placeholder: "Describe examples, creative concepts, or inspiration you've seen...",
				Help: []string{
					"This helps us understand your preferences and avoid reinventing the wheel",
					"Describe what specifically you liked about the examples",
					"Add any relevant links in the section below",
				},
				Examples: []string{
					"Competitor campaigns you admire",
					"Industry case studies or best practices",
					"Creative concepts or formats you've seen work well",
					"Specific tactics or messaging approaches",
				},
			},
			{
				Name:        "exampleLinks",
				Label:       "Reference Links",
				Type:        form.FieldLinks,
				Placeholder: "https://example.com/campaign",
				Message:     "Please enter valid URLs",
				Help: []string{
					"Add links to campaigns, case studies, or examples you mentioned above",
					"Include any competitor examples or inspiration sources",
					"Links help the team understand your vision better",
				},
				Examples: []string{
					"Campaign landing pages you admire",
					"Competitor marketing examples",
					"Industry articles or case studies",
					"Creative portfolios or inspiration sites",
				},
			},
			{
				Name:        "actionSteps",
				Label:       "What are the expected action steps of your target persona once they have been reached by this marketing activity?",
				Type:        form.FieldTextarea,
				Placeholder: "Describe the customer journey and expected actions...",
				Required:    true,
				Rules:       "min=10",
				Message:     "Please describe expected action steps (minimum 10 characters)",
				Help: []string{
					"Map out the complete customer journey from awareness to conversion",
					"Think about each step in the funnel",
					"Consider what actions you want users to take at each stage",
				},
				Examples: []string{
					"See ad → Visit landing page → Download whitepaper → Schedule demo",
					"Read email → Click to website → Add to cart → Purchase",
					"View social post → Follow account → Sign up for newsletter",
					"Watch video → Visit website → Request quote → Become customer",
				},
			},
			{
				Name:    "submission-info",
				Label:   "Before You Submit",
				Type:    form.FieldDisclosure,
				Variant: form.VariantInfo,
				Content: []string{
					"Your marketing request will be automatically posted to the Marketing team's Microsoft Teams channel for review and assignment.",
				},
			},
		},
	}
}
