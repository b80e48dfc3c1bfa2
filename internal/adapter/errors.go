// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrWebhookRejected is returned when the receiver answers with a 4xx
	// status. Retrying the same batch will not help.
	ErrWebhookRejected = errors.New("webhook rejected notifications")

	// ErrWebhookUnavailable is returned for 5xx answers and transport
	// failures that outlived the retries.
	ErrWebhookUnavailable = errors.New("webhook unavailable")

	// ErrNoWebhookURL is returned by NewWebhookAdapter when no URL is
	// configured.
	ErrNoWebhookURL = errors.New("notification webhook url is empty")
)
