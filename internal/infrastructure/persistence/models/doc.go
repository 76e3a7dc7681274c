// Package models contains GORM persistence models. Domain types stay free of
// ORM concerns; each model converts with ToDomain / FromDomain.
//
//   - base.go: BaseModel and AggregateModel
//   - fiscal.go: fiscal records and record sequences
//   - directory.go: owners, ownership links and counterparties
package models
