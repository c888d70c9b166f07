//	Copyright 2025 ANALISTIC-DOC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package handlers

import (
	"log"
	"net/http"
)

// HandleIndex serves the single-page dashboard
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ANALISTIC-DOC</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1100px; margin: 0 auto; background-color: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 30px; }
        h1 { font-weight: 300; color: #333; }
        h2 { color: #0891b2; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
        th { background-color: #f8f9fa; }
        button { background-color: #0891b2; color: white; border: none; border-radius: 4px; padding: 8px 14px; cursor: pointer; margin-right: 6px; }
        button:hover { background-color: #0e7490; }
        input[type=text], textarea { width: 100%; box-sizing: border-box; padding: 6px; margin-bottom: 8px; }
        .notice { color: #b45309; }
        #dataset-wrap { max-height: 420px; overflow: auto; }
    </style>
</head>
<body>
    <div class="container">
        <h1>ANALISTIC-DOC</h1>
        <p>Carregue os arquivos de log exportados (HTML, TXT, CSV ou XLSX) para consolidar os registros de data/hora e endereço IP.</p>

        <h2>Arquivos</h2>
        <input type="file" id="files" multiple>
        <button onclick="upload()">Processar</button>
        <div id="notices"></div>

        <h2>Dados consolidados</h2>
        <div id="dataset-wrap"><table id="dataset"></table></div>
        <p>
            <button onclick="loadDataset()">Atualizar</button>
            <button onclick="window.open('/charts')">Gráficos</button>
            <button onclick="window.open('/api/export?format=csv')">CSV</button>
            <button onclick="window.open('/api/export?format=json')">JSON</button>
            <button onclick="window.open('/api/export?format=xlsx')">XLSX</button>
        </p>

        <h2>Insights</h2>
        <button onclick="loadInsights()">Calcular</button>
        <ul id="insights"></ul>

        <h2>Relatório</h2>
        <input type="text" id="organization" placeholder="Órgão">
        <input type="text" id="unit" placeholder="Unidade/Setor">
        <input type="text" id="case_number" placeholder="Procedimento">
        <input type="text" id="analyst" placeholder="Analista responsável">
        <input type="text" id="requester" placeholder="Autoridade requisitante">
        <textarea id="observations" placeholder="Observações" rows="2"></textarea>
        <label><input type="checkbox" id="include_charts" checked> Incluir gráficos</label>
        <p>
            <button onclick="makeReport('txt')">TXT</button>
            <button onclick="makeReport('html')">HTML</button>
            <button id="btn-docx" onclick="makeReport('docx')">DOCX</button>
            <button id="btn-pdf" onclick="makeReport('pdf')">PDF</button>
        </p>
        <div id="report-notice" class="notice"></div>
    </div>

    <script>
        fetch('/api/capabilities').then(r => r.json()).then(data => {
            if (!data.capabilities.docx) {
                document.getElementById('btn-docx').disabled = true;
                document.getElementById('report-notice').textContent =
                    'DOCX indisponível: ' + data.capabilities.docx_reason;
            }
            if (!data.capabilities.pdf) {
                document.getElementById('btn-pdf').disabled = true;
            }
        });

        function upload() {
            const input = document.getElementById('files');
            if (input.files.length === 0) { return; }
            const form = new FormData();
            for (const file of input.files) { form.append('files', file); }
            fetch('/api/upload', { method: 'POST', body: form })
                .then(r => r.json())
                .then(data => {
                    const notices = document.getElementById('notices');
                    notices.innerHTML = '';
                    for (const notice of data.notices || []) {
                        const p = document.createElement('p');
                        p.className = 'notice';
                        p.textContent = notice;
                        notices.appendChild(p);
                    }
                    loadDataset();
                });
        }

        function loadDataset() {
            fetch('/api/dataset').then(r => r.json()).then(data => {
                const table = document.getElementById('dataset');
                table.innerHTML = '';
                const header = table.insertRow();
                for (const col of data.columns) {
                    const th = document.createElement('th');
                    th.textContent = col;
                    header.appendChild(th);
                }
                for (const row of data.rows) {
                    const tr = table.insertRow();
                    for (const cell of row) { tr.insertCell().textContent = cell; }
                }
            });
        }

        function loadInsights() {
            fetch('/api/insights').then(r => r.json()).then(data => {
                const list = document.getElementById('insights');
                list.innerHTML = '';
                for (const sentence of data.sentences || []) {
                    const li = document.createElement('li');
                    li.textContent = sentence;
                    list.appendChild(li);
                }
            });
        }

        function makeReport(format) {
            const body = {
                organization: document.getElementById('organization').value,
                unit: document.getElementById('unit').value,
                case_number: document.getElementById('case_number').value,
                analyst: document.getElementById('analyst').value,
                requester: document.getElementById('requester').value,
                observations: document.getElementById('observations').value,
                include_charts: document.getElementById('include_charts').checked
            };
            fetch('/api/report?format=' + format, {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify(body)
            }).then(r => {
                if (!r.ok) { return r.text().then(t => { throw new Error(t); }); }
                return r.blob();
            }).then(blob => {
                const url = URL.createObjectURL(blob);
                const a = document.createElement('a');
                a.href = url;
                a.download = 'relatorio.' + format;
                a.click();
                URL.revokeObjectURL(url);
            }).catch(err => {
                document.getElementById('report-notice').textContent = err.message;
            });
        }
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page)); err != nil {
		log.Printf("Error writing HTML response: %v", err)
	}
}
