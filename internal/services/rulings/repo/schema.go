package repo

import _ "embed"

// Schema is the DDL of the judgements table
//
//go:embed schema.sql
var Schema string
