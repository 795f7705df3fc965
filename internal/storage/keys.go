// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import "fmt"

const allContentKey = "content:all"

func accountKey(id string) string            { return "account:" + id }
func accountMembersKey(id string) string     { return "account:" + id + ":members" }
func accountInvitesKey(id string) string     { return "account:" + id + ":invites" }
func accountContentKey(id string) string     { return "account:" + id + ":content" }
func membershipKey(aid, uid string) string   { return fmt.Sprintf("membership:%s:%s", aid, uid) }
func userAccountsKey(uid string) string      { return "user:" + uid + ":accounts" }
func userPersonalKey(uid string) string      { return "user:" + uid + ":personal" }
func userTasksKey(uid string) string         { return "user:" + uid + ":tasks" }
func userNotificationsKey(uid string) string { return "user:" + uid + ":notifications" }
func inviteKey(id string) string             { return "invite:" + id }
func taskKey(id string) string               { return "task:" + id }
func contentKey(id string) string            { return "content:" + id }
func contentSlugKey(slug string) string      { return "content:slug:" + slug }
func effectKey(kind, key string) string      { return fmt.Sprintf("effect:%s:%s", kind, key) }
