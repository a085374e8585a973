package bot

// 发往聊天端的文案。占位符 ${…} 由 binding.Interpolate 填充。
const (
	msgWelcome = "🎯 *Welcome to Your Trading Partner Bot*\n\n" +
		"I'll help you maintain discipline and clarity before every trading session.\n\n" +
		"Let's set up your trading framework.\n\n" +
		"📊 *Step 1: Trading Pairs*\n" +
		"Enter your trading pairs (comma-separated).\n\n" +
		"*Example:* `EURUSD, GBPUSD, XAUUSD, USDJPY`"

	msgPairsEmpty = "❌ Please enter at least one trading pair.\n\n" +
		"*Example:* `EURUSD, GBPUSD`"

	msgPairsConfigured = "✅ *Pairs Configured:* ${pairs}\n\n" +
		"📋 *Step 2: Checklist Questions*\n\n" +
		"Enter your ${count} analysis questions (one per line).\n\n" +
		"*Example:*\n" +
		"`Daily Bias\n" +
		"Order Flow\n" +
		"M15 SMS\n" +
		"Verdict`\n\n" +
		"_The last question will be your Buy/Sell/Stand by decision._"

	msgWrongQuestionCount = "❌ Please enter exactly ${count} questions (you entered ${got}).\n\n" +
		"*Example:*\n" +
		"`Daily Bias\n" +
		"Order Flow\n" +
		"M15 SMS\n" +
		"Verdict`"

	msgSetupComplete = "🎉 *Setup Complete!*\n\n" +
		"*Pairs:* ${pairs}\n" +
		"*Questions:* ${count} configured\n\n" +
		"Your framework is now saved.\n\n" +
		"Ready to start? Use /start to begin your first session.\n\n" +
		"_You can always edit your setup with /edit\\_pairs or /edit\\_questions_"

	msgSessionStarted = "✅ *Session Started*\n\n" +
		"Analyzing ${count} pairs with your framework.\n" +
		"Answer each question thoughtfully.\n\n" +
		"_Remember: If you're rushing, that's your signal to pause._"

	msgAskQuestion = "💡 *${pair}*\n\n*${question}:*"

	msgAskVerdict = "💡 *${pair}*\n\n*${question}*\n\n_Select your decision:_"

	msgPairComplete = "✓ ${done} complete\n\n→ Moving to ${next}"

	msgEmptyAnswer = "❌ Please provide an answer."

	msgInvalidVerdict = "❌ Please select Buy, Sell, or Stand by."

	msgCompleted = "✅ *Checklist Completed*\n\n" +
		"Generating your trading snapshot..."

	msgSnapshotCaption = "📸 *Your Trading Plan Snapshot*\n\n" +
		"_Review carefully before placing any trades._\n\n" +
		"Use /start to begin a new session."

	msgSnapshotFailed = "❌ Error generating snapshot image. Please try again with /start"

	msgNotConfigured = "❌ You haven't set up your bot yet. Use /start to begin setup."

	msgEditPairs = "*Current pairs:* ${pairs}\n\n" +
		"Enter your new trading pairs (comma-separated):"

	msgEditQuestions = "*Current questions:*\n${questions}\n\n" +
		"Enter your ${count} new questions (one per line):"

	msgCancelled = "❌ Operation cancelled.\n\n" +
		"Use /start to begin a new session."

	msgSaveFailed = "❌ Could not save your setup. Please send your questions again."

	msgIdleHint = "Use /start to begin a session, or /help for the command list."

	msgImportUsage = "Send your framework definition with the command:\n\n" +
		"`/import framework {\n" +
		"  pairs EURUSD, GBPUSD\n" +
		"  question \"Daily Bias\"\n" +
		"  question \"Order Flow\"\n" +
		"  question \"M15 SMS\"\n" +
		"  question \"Verdict\"\n" +
		"}`"

	msgImportFailed = "❌ Could not import framework: ${reason}"

	msgImported = "🎉 *Framework Imported*\n\n" +
		"*Pairs:* ${pairs}\n" +
		"*Questions:* ${count} configured\n\n" +
		"Use /start to begin a session."

	msgHelp = "🎯 *Trading Partner Bot - Help*\n\n" +
		"*Available Commands:*\n" +
		"/start - Begin new trading session or initial setup\n" +
		"/edit\\_pairs - Change your trading pairs\n" +
		"/edit\\_questions - Modify your checklist questions\n" +
		"/import - Import a framework definition\n" +
		"/export - Export your framework definition\n" +
		"/help - Show this help message\n" +
		"/cancel - Cancel current operation\n\n" +
		"*How It Works:*\n" +
		"1. Set up your pairs and questions (first time only)\n" +
		"2. Use /start before each trading session\n" +
		"3. Answer questions for each pair\n" +
		"4. Receive a professional snapshot image\n" +
		"5. Download and reference during trading\n\n" +
		"*Philosophy:*\n" +
		"This bot enforces discipline, not entries.\n" +
		"If you rush through questions, don't trade.\n\n" +
		"*Pro Tips:*\n" +
		"• Previous sessions remain visible in chat history\n" +
		"• \"Stand by\" is a valid decision\n" +
		"• The snapshot is your commitment\n" +
		"• Review it before placing any trade"
)
