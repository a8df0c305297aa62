package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrAmbiguousID       = errors.New("task id prefix is ambiguous")
	ErrEmptyText         = errors.New("task text cannot be empty")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status filter")
	ErrInvalidDate       = errors.New("invalid date")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrConfigExists      = errors.New("config file already exists")
	ErrUnknownBackend    = errors.New("unknown backend")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrSnapshotCorrupt   = errors.New("snapshot cannot be decoded")
	ErrSaveDisabled      = errors.New("saving disabled until the snapshot loads")
	ErrNoEncryptionKey   = errors.New("no encryption key available")
	ErrNoLogFile         = errors.New("no log file")
)
