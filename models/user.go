package models

import "strings"

// Identity is the authenticated caller resolved from an access token.
// It is a value type: handlers receive copies and never share it across requests.
type Identity struct {
	EpCode   string `json:"epCode"`   // Employee code, the token subject
	EpName   string `json:"epName"`
	TeamCode string `json:"teamCode"`
	TeamName string `json:"teamName"`
	BusuCode string `json:"busuCode"` // Department code
	BusuName string `json:"busuName"`
}

// IsAnonymous returns true when the identity carries no employee code
func (i Identity) IsAnonymous() bool {
	return strings.TrimSpace(i.EpCode) == ""
}

// UserRecord is the employee row returned by the credential lookup
type UserRecord struct {
	EpCode   string `json:"epCode" db:"ep_code"`
	EpName   string `json:"epName" db:"ep_name"`
	TeamCode string `json:"teamCode" db:"team_code"`
	TeamName string `json:"teamName" db:"team_name"`
	BusuCode string `json:"busuCode" db:"busu_code"`
	BusuName string `json:"busuName" db:"busu_name"`
}

// Identity builds the identity issued for this record under the given employee code.
// The code presented at login wins over the stored one so the token subject
// always matches what the caller authenticated with.
func (u *UserRecord) Identity(epCode string) Identity {
	return Identity{
		EpCode:   epCode,
		EpName:   u.EpName,
		TeamCode: u.TeamCode,
		TeamName: u.TeamName,
		BusuCode: u.BusuCode,
		BusuName: u.BusuName,
	}
}

// UserInfo is the public profile returned alongside a freshly issued token
type UserInfo struct {
	EpName   string `json:"epName"`
	TeamCode string `json:"teamCode"`
	TeamName string `json:"teamName"`
	BusuCode string `json:"busuCode"`
	BusuName string `json:"busuName"`
}

// UserInfo returns the profile part of the identity
func (i Identity) UserInfo() UserInfo {
	return UserInfo{
		EpName:   i.EpName,
		TeamCode: i.TeamCode,
		TeamName: i.TeamName,
		BusuCode: i.BusuCode,
		BusuName: i.BusuName,
	}
}
