/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/prefs"
	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
)

// discord expects an answer within 3 seconds
const replyBudget = 2500 * time.Millisecond

var (
	boardSource viewer.Source
	prefStore   prefs.Store = prefs.NewMemory()
	rules                   = board.DefaultRules()
)

func leagueChoices() []*discordgo.ApplicationCommandOptionChoice {
	var out []*discordgo.ApplicationCommandOptionChoice
	for idx, l := range board.DefaultLeagues() {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{
			Name:  l.Name,
			Value: idx + 1,
		})
	}
	return out
}

// interactionUserID returns the invoking user; Member is set in guilds and
// User in DMs.
func interactionUserID(inter *discordgo.Interaction) string {
	if inter.Member != nil && inter.Member.User != nil {
		return inter.Member.User.ID
	}
	if inter.User != nil {
		return inter.User.ID
	}
	return ""
}

func boardCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	var league, round int64 // 1-based; 0 means unset
	broadcast := false      // default
	for _, opt := range data.Options {
		if opt.Name == "league" {
			league = opt.IntValue()
		} else if opt.Name == "round" {
			round = opt.IntValue()
		} else if opt.Name == "broadcast" {
			broadcast = opt.BoolValue()
		}
	}

	ns := internal.DiscordPrefsNS
	if uid := interactionUserID(inter); uid != "" {
		ns = prefs.Key(internal.DiscordPrefsNS, uid)
	}
	v := viewer.New(ctx, viewer.Options{
		Rules:     rules,
		Source:    boardSource,
		Prefs:     prefStore,
		Namespace: ns,
	})
	defer v.Close()

	if round != 0 {
		if err := v.SelectRound(int(round - 1)); err != nil {
			resp.Data.Content = fmt.Sprintf("Invalid round %v; rounds start at 1.", round)
			log.Printf("discordbot.board: %v", resp.Data.Content)
			return resp
		}
	}
	if league != 0 {
		if err := v.SelectLeague(int(league - 1)); err != nil {
			resp.Data.Content = fmt.Sprintf("Unknown league %v.", league)
			log.Printf("discordbot.board: %v", resp.Data.Content)
			return resp
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, replyBudget)
	defer cancel()
	snap, err := v.WaitReady(waitCtx)
	if err != nil {
		resp.Data.Content = "Still fetching pairings; please try again in a moment."
		log.Printf("discordbot.board: %v: %v", resp.Data.Content, err)
		return resp
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	sb.WriteString(board.BuildBoardOutput(snap.League, snap.RoundIndex, snap.Rows))
	sb.WriteString("```\n")
	if snap.NumberOfRounds > 0 {
		sb.WriteString(fmt.Sprintf("%v has %d rounds posted; pick one with /board round:<n>\n",
			snap.League.Name, snap.NumberOfRounds))
	}
	if snap.Err != nil {
		sb.WriteString(fmt.Sprintf("Warning: some rounds could not be fetched: %v\n",
			snap.Err))
	}
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
