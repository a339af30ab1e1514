// Package models holds the issue reporting domain types and their validation
// tags.
//
// Attachments are stored as {issueId}_{attachmentId}_{fileName} with ids
// starting at 1. Files written under the earlier numbering, where the first
// attachment of an issue was named {issueId}_2_{fileName}, are not read back.
package models
