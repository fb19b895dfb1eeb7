package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/narrvoca/internal/ai"
	"github.com/example/narrvoca/internal/auth"
	"github.com/example/narrvoca/internal/branching"
	"github.com/example/narrvoca/internal/database"
	"github.com/example/narrvoca/internal/excel"
	"github.com/example/narrvoca/internal/notify"
	"github.com/example/narrvoca/internal/progress"
	"github.com/example/narrvoca/internal/reader"
	"github.com/example/narrvoca/internal/scheduler"
	"github.com/example/narrvoca/internal/spaced_repetition"
	"github.com/example/narrvoca/internal/vocabsync"
)

func main() {
	importFile := flag.String("import", "", "import vocabulary from an Excel or CSV file and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importFile != "" {
		runImport(*importFile)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	startReminders()
	runReader(ctx)
}

// runImport loads vocabulary reference data from a spreadsheet
func runImport(path string) {
	config := excel.DefaultImportConfig()
	config.FilePath = path

	result, err := excel.ImportVocabulary(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished: %d processed, %d created, %d skipped",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("Import error: %s", e)
	}
}

// startReminders wires the review scheduler to Telegram when a bot token is
// configured; without one, reminders stay off.
func startReminders() {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return
	}

	notifier, err := notify.NewTelegramNotifier(token, notify.EnvChatID(os.Getenv("TELEGRAM_CHAT_ID")))
	if err != nil {
		log.Printf("Reminders disabled: %v", err)
		return
	}

	s := scheduler.New(notifier)
	s.Start()
	log.Println("Review reminders enabled")
}

// fallbackGrader stands in when no grading oracle is configured
type fallbackGrader struct{}

func (fallbackGrader) GradeWithFallback(ctx context.Context, req ai.GradeRequest) *ai.GradeResult {
	return &ai.GradeResult{AccuracyScore: ai.FallbackScore, Feedback: ""}
}

// runReader drives an interactive terminal reading session
func runReader(ctx context.Context) {
	storyRepo := database.NewStoryRepository()
	vocabRepo := database.NewVocabularyRepository()

	var grader reader.Grader
	if g, err := ai.New(); err != nil {
		log.Printf("Grading oracle unavailable (%v); submissions get a neutral score", err)
		grader = fallbackGrader{}
	} else {
		grader = g
	}

	session := reader.NewSession(
		auth.NewLocalProvider(),
		storyRepo,
		grader,
		branching.NewResolver(database.NewBranchingRepository()),
		progress.NewRecorder(database.NewProgressRepository(), database.NewMasteryRepository(), spaced_repetition.New()),
		vocabsync.New(vocabRepo),
		vocabRepo,
		database.NewInteractionRepository(),
	)

	if err := session.Init(); err != nil {
		if err == auth.ErrNoSession {
			log.Fatal("No active session; sign in first")
		}
		log.Fatalf("Failed to initialize reader: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nGoodbye!")
			return
		default:
		}

		switch session.State() {
		case reader.Browsing:
			if !promptStory(session, scanner) {
				return
			}
		case reader.Reading:
			if !stepNode(ctx, session, storyRepo, scanner) {
				return
			}
		case reader.Complete:
			fmt.Println("\n*** Story complete! ***")
			session.Reset()
		default:
			return
		}
	}
}

// promptStory shows the story list and loads the chosen story.
// Returns false when the user quits.
func promptStory(session *reader.Session, scanner *bufio.Scanner) bool {
	stories := session.Stories()
	if len(stories) == 0 {
		fmt.Println("No stories available.")
		return false
	}

	fmt.Println("\nAvailable stories:")
	for i, story := range stories {
		line := fmt.Sprintf("  %d. %s (%s", i+1, story.Title, story.TargetLanguage)
		if story.DifficultyLevel != nil {
			line += ", " + *story.DifficultyLevel
		}
		fmt.Println(line + ")")
	}
	fmt.Print("Pick a story (or q to quit): ")

	if !scanner.Scan() {
		return false
	}
	choice := strings.TrimSpace(scanner.Text())
	if choice == "q" {
		return false
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(stories) {
		fmt.Println("Invalid choice.")
		return true
	}
	if err := session.SelectStory(stories[n-1].ID); err != nil {
		fmt.Println("Could not load that story, try again.")
	}
	return true
}

// stepNode renders the current node and advances the reader.
// Returns false when the user quits.
func stepNode(ctx context.Context, session *reader.Session, storyRepo *database.StoryRepository, scanner *bufio.Scanner) bool {
	node := session.CurrentNode()
	if node == nil {
		session.Reset()
		return true
	}

	fmt.Println()
	if node.ContextDescription != nil {
		fmt.Printf("[%s]\n", *node.ContextDescription)
	}
	for _, text := range node.Texts {
		if text.Speaker != nil {
			fmt.Printf("%s: %s\n", *text.Speaker, text.TextContent)
		} else {
			fmt.Println(text.TextContent)
		}
	}

	if points, err := storyRepo.GetGrammarForNode(node.ID); err == nil && len(points) > 0 {
		fmt.Println("\nGrammar notes:")
		for _, p := range points {
			fmt.Printf("  - %s: %s\n", p.RuleName, p.ExplanationEN)
		}
	}

	if feedback := session.Feedback(); feedback != "" {
		fmt.Printf("\nFeedback: %s\n", feedback)
	}

	if session.IsCheckpoint() {
		fmt.Print("\nYour response (or q to quit): ")
		if !scanner.Scan() {
			return false
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "q" {
			return false
		}
		session.SetInput(line)
		if err := session.Submit(ctx); err != nil {
			fmt.Println("Something went wrong, try again.")
		}
		return true
	}

	fmt.Print("\nPress Enter to continue (or q to quit): ")
	if !scanner.Scan() {
		return false
	}
	if strings.TrimSpace(scanner.Text()) == "q" {
		return false
	}
	if err := session.Continue(); err != nil {
		fmt.Println("Something went wrong, try again.")
	}
	return true
}
