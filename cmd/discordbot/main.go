/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal/setup"
)

var botPubKey ed25519.PublicKey

var client *discordgo.Session

type TopLevelCommand string

const (
	BoardCmd TopLevelCommand = "board"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	BoardCmd: boardCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func registerSlashCommands(cfg internal.Config) {
	boardCmd := &discordgo.ApplicationCommand{
		Name:        string(BoardCmd),
		Description: "Show the chessbreak pairing board",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "league",
				Description: "League to show; remembered for next time",
				Required:    false,
				Choices:     leagueChoices(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "round",
				Description: "Round number to show; remembered for next time",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "broadcast",
				Description: "Share with the rest of the channel instead of only to you (default is false)",
				Required:    false,
			},
		},
	}

	if cfg.DiscordCmdID == "" {
		cmd, err := client.ApplicationCommandCreate(cfg.DiscordAppID, "", boardCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", boardCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set DISCORD_CMD_ID",
			cmd.Name, cmd.ID)
	} else {
		cmd, err := client.ApplicationCommandEdit(cfg.DiscordAppID, "",
			cfg.DiscordCmdID, boardCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", boardCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	ctx := context.Background()

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}

	pubKeyBytes, err := hex.DecodeString(cfg.DiscordPublicKey)
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("discordbot.main: Failed to parse DISCORD_PUBLIC_KEY: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	var closePrefs func()
	prefStore, closePrefs, err = setup.NewPrefs(ctx, cfg, internal.PrefsMemory)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	defer closePrefs()
	boardSource = setup.NewSource(ctx, cfg)
	rules = cfg.Rules()

	if cfg.DiscordToken != "" && cfg.DiscordAppID != "" {
		client, err = discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			log.Fatalf("dicordbot.main: Failed to initialize discord client: %v", err)
		}
		go registerSlashCommands(cfg)
	} else {
		log.Printf("discordbot.main: DISCORD_BOT_TOKEN or DISCORD_APP_ID unset; skipping command registration")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.ListenAddr)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
