package domain

// SubscriptionFormData is the raw, unvalidated body of a subscription request.
type SubscriptionFormData struct {
	Name  string
	Email string
}

// NewSubscriber is a subscriber ready to be persisted. It has no id until storage assigns one.
type NewSubscriber struct {
	name  SubscriberName
	email SubscriberEmail
}

func NewSubscriberOf(name SubscriberName, email SubscriberEmail) NewSubscriber {
	return NewSubscriber{name: name, email: email}
}

// ParseNewSubscriber validates the email, then the name, and stops at the first failure.
func ParseNewSubscriber(form SubscriptionFormData) (NewSubscriber, error) {
	email, err := ParseSubscriberEmail(form.Email)
	if err != nil {
		return NewSubscriber{}, err
	}

	name, err := ParseSubscriberName(form.Name)
	if err != nil {
		return NewSubscriber{}, err
	}

	return NewSubscriberOf(name, email), nil
}

func (s NewSubscriber) Name() SubscriberName {
	return s.name
}

func (s NewSubscriber) Email() SubscriberEmail {
	return s.email
}
