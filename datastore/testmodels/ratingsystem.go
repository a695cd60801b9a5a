/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds entities shared by tests and examples.
package testmodels

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/querykit/schema"
)

// RatingSystemDefinition describes the table rating systems are stored in.
var RatingSystemDefinition = schema.Definition{
	Name:         "ratingSystems",
	TableName:    "RatingSystems",
	PartitionKey: "Id",
	SortKey:      "Region",
}

type RatingSystem struct {

	// Unique identifier for the rating system.
	// Required: true
	// Format: uuid
	ID strfmt.UUID `dynamodbav:"Id"`

	// Region the rating system is run in.
	// Required: true
	Region string `dynamodbav:"Region"`

	// Name of the rating system.
	// Required: true
	Name string `dynamodbav:"Name"`

	// A description of the rating system.
	Description string `dynamodbav:"Description,omitempty"`

	// site Url
	SiteURL string `dynamodbav:"SiteUrl,omitempty"`

	// Rating a new player starts with.
	InitialRating int `dynamodbav:"InitialRating"`

	// Timestamp when the rating system was created.
	// Format: date-time
	CreatedAt string `dynamodbav:"CreatedAt,omitempty"`
}

// NewRatingSystem returns a rating system stamped with the current time.
func NewRatingSystem(id, region, name string) RatingSystem {
	return RatingSystem{
		ID:            strfmt.UUID(id),
		Region:        region,
		Name:          name,
		InitialRating: 1500,
		CreatedAt:     strfmt.DateTime(time.Now().UTC()).String(),
	}
}

// Validate checks the formatted fields.
func (r RatingSystem) Validate() error {
	if !strfmt.IsUUID(r.ID.String()) {
		return fmt.Errorf("rating system id %q is not a uuid", r.ID)
	}
	if r.CreatedAt != "" {
		if _, err := strfmt.ParseDateTime(r.CreatedAt); err != nil {
			return fmt.Errorf("rating system created at: %w", err)
		}
	}
	return nil
}
