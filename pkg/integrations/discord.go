package integrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/services"
	"go.uber.org/zap"
)

const (
	pagePrefix = "page"

	// Discord rejects embed descriptions above 4096 characters.
	maxDescription = 4000
)

// Commands is the slash command set registered in the guild.
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "comics_this_week",
		Description: "Browse the comics from tracked series that are out this week",
	},
	{
		Name:        "print_series",
		Description: "Prints out any comics that we are tracking",
	},
	{
		Name:        "add_series",
		Description: "Adds a new series to check for updates",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "series_id",
				Description: "The ID of the series to add",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "series_name",
				Description: "The name of the series to add",
			},
		},
	},
	{
		Name:        "remove_series",
		Description: "Removes a series from the list",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "series_id",
				Description: "The ID of the series to remove",
				Required:    true,
			},
		},
	},
}

// Discord connects the controller and scheduler to a guild.
type Discord struct {
	session    *discordgo.Session
	guildID    string
	channelID  string
	controller *services.Controller
	sessions   *services.SessionManager
	logger     *zap.Logger
}

func NewDiscord(token, guildID, channelID string, controller *services.Controller, sessions *services.SessionManager, logger *zap.Logger) (*Discord, error) {
	session, err := discordgo.New("Bot " + strings.TrimPrefix(token, "Bot "))
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return &Discord{
		session:    session,
		guildID:    guildID,
		channelID:  channelID,
		controller: controller,
		sessions:   sessions,
		logger:     logger,
	}, nil
}

// Run opens the gateway and blocks until ctx is done. onReady runs on every
// Ready event, which includes reconnects.
func (d *Discord) Run(ctx context.Context, onReady func(ctx context.Context) error) error {
	d.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		d.logger.Info("Jeffbot is running", zap.String("user", r.User.Username))
		if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, d.guildID, Commands); err != nil {
			d.logger.Error("Failed to register commands", zap.Error(err))
		}
		if onReady != nil {
			if err := onReady(ctx); err != nil {
				d.logger.Error("Ready hook failed", zap.Error(err))
			}
		}
	})
	d.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		d.handleInteraction(ctx, s, i)
	})

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}

	<-ctx.Done()
	return d.session.Close()
}

// Announce posts a release notice to the configured channel.
func (d *Discord) Announce(ctx context.Context, a services.Announcement) error {
	msg := &discordgo.MessageSend{Content: a.Content}
	if a.Comic != nil {
		msg.Embeds = []*discordgo.MessageEmbed{comicEmbed(a.Comic)}
	}
	_, err := d.session.ChannelMessageSendComplex(d.channelID, msg, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) handleInteraction(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID != "" && i.GuildID != d.guildID {
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		d.handleCommand(ctx, s, i.Interaction)
	case discordgo.InteractionMessageComponent:
		d.handleComponent(s, i.Interaction)
	}
}

func (d *Discord) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	cmd := i.ApplicationCommandData()
	options := optionValues(cmd)
	d.logger.Debug("Command received", zap.String("command", cmd.Name))

	switch cmd.Name {
	case "comics_this_week":
		if !d.deferReply(s, i) {
			return
		}
		if _, err := d.controller.BrowseThisWeek(ctx, &interactionReply{session: s, interaction: i}); err != nil {
			d.logger.Warn("Failed to start browser", zap.Error(err))
		}
	case "print_series":
		d.respond(s, i, d.controller.ListSeries())
	case "add_series":
		if !d.deferReply(s, i) {
			return
		}
		msg, _ := d.controller.AddSeries(ctx, options["series_id"], options["series_name"])
		reply := &interactionReply{session: s, interaction: i}
		if err := reply.Text(ctx, msg); err != nil {
			d.logger.Warn("Failed to reply", zap.String("command", cmd.Name), zap.Error(err))
		}
	case "remove_series":
		msg, _ := d.controller.RemoveSeries(options["series_id"])
		d.respond(s, i, msg)
	}
}

func (d *Discord) handleComponent(s *discordgo.Session, i *discordgo.Interaction) {
	id, ev, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		d.logger.Warn("Failed to acknowledge button", zap.Error(err))
	}

	if err := d.sessions.Dispatch(id, ev); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrSessionClosed) {
			d.logger.Debug("Button pressed on an expired browser", zap.String("session", id))
			return
		}
		d.logger.Warn("Failed to dispatch navigation", zap.String("session", id), zap.Error(err))
	}
}

func (d *Discord) deferReply(s *discordgo.Session, i *discordgo.Interaction) bool {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		d.logger.Warn("Failed to defer reply", zap.Error(err))
		return false
	}
	return true
}

func (d *Discord) respond(s *discordgo.Session, i *discordgo.Interaction, content string) {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		d.logger.Warn("Failed to reply", zap.Error(err))
	}
}

// interactionReply edits the original response of one command.
type interactionReply struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionReply) Text(ctx context.Context, content string) error {
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content: &content,
	}, discordgo.WithContext(ctx))
	return err
}

func (r *interactionReply) Render(ctx context.Context, view services.PageView) error {
	content := ""
	embeds := []*discordgo.MessageEmbed{pageEmbed(view)}
	components := pageComponents(view)
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return err
}

func optionValues(cmd discordgo.ApplicationCommandInteractionData) map[string]string {
	values := make(map[string]string, len(cmd.Options))
	for _, opt := range cmd.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			values[opt.Name] = opt.StringValue()
		}
	}
	return values
}

func comicEmbed(comic *data.Comic) *discordgo.MessageEmbed {
	description := comic.Description
	if len(description) > maxDescription {
		description = description[:maxDescription-3] + "..."
	}

	embed := &discordgo.MessageEmbed{
		Title:       comic.Title,
		URL:         comic.DetailURL,
		Description: description,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "On sale", Value: services.ReleaseDate(comic), Inline: true},
			{Name: "Writer", Value: services.WriterName(comic), Inline: true},
		},
	}
	if comic.CoverURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: comic.CoverURL}
	}
	return embed
}

func pageEmbed(view services.PageView) *discordgo.MessageEmbed {
	embed := comicEmbed(&view.Comic)
	footer := view.Position()
	if view.Expired {
		footer += " · browsing closed"
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}

func pageComponents(view services.PageView) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: customID(view.SessionID, services.EventPrev),
					Disabled: !view.PrevEnabled,
				},
				discordgo.Button{
					Label:    view.Position(),
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:%s:position", pagePrefix, view.SessionID),
					Disabled: true,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.PrimaryButton,
					CustomID: customID(view.SessionID, services.EventNext),
					Disabled: !view.NextEnabled,
				},
			},
		},
	}
}

func customID(sessionID string, ev services.Event) string {
	return fmt.Sprintf("%s:%s:%s", pagePrefix, sessionID, ev)
}

func parseCustomID(id string) (string, services.Event, bool) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[0] != pagePrefix || parts[1] == "" {
		return "", 0, false
	}
	switch parts[2] {
	case services.EventPrev.String():
		return parts[1], services.EventPrev, true
	case services.EventNext.String():
		return parts[1], services.EventNext, true
	}
	return "", 0, false
}
