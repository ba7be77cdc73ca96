package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pokertable/internal/api"
	"pokertable/internal/identity"
)

const defaultServer = "http://localhost:8000"

func serverFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("POKER_SERVER")); v != "" {
		return v
	}
	return defaultServer
}

func newRootCmd() *cobra.Command {
	var server string

	root := &cobra.Command{
		Use:           "pokertable",
		Short:         "Terminal client for a hold'em table authority",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&server, "server", serverFromEnv(), "lobby/authority base URL")

	root.AddCommand(newCreateCmd(&server))
	root.AddCommand(newJoinCmd(&server))
	root.AddCommand(newPlayCmd(&server))
	return root
}

func newCreateCmd(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game and print its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			gameID, err := api.New(*server).CreateGame(ctx)
			if err != nil {
				pterm.Error.Printfln("Create failed: %v", err)
				return err
			}
			pterm.Success.Printfln("Game created: %s", gameID)
			pterm.Info.Printfln("Share it, then: pokertable join --game %s --name <you>", gameID)
			return nil
		},
	}
}

func newJoinCmd(server *string) *cobra.Command {
	var gameID, name string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a game and persist the minted identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if strings.TrimSpace(name) == "" {
				entered, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your player name").Show()
				name = strings.TrimSpace(entered)
			}

			playerID, err := api.New(*server).JoinGame(ctx, gameID, name)
			if err != nil {
				pterm.Error.Printfln("Join failed: %v", err)
				return err
			}

			store, mode, err := identity.NewStoreFromEnv()
			if err != nil {
				return fmt.Errorf("open identity store (%s): %w", mode, err)
			}
			defer store.Close()

			if err := store.Save(ctx, gameID, identity.Identity{PlayerID: playerID, PlayerName: name}); err != nil {
				return fmt.Errorf("persist identity: %w", err)
			}
			pterm.Success.Printfln("Joined game %s as %s", gameID, name)
			pterm.Info.Println("Now run: pokertable play")
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "", "game id to join")
	cmd.Flags().StringVar(&name, "name", "", "player name")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}
